package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MatchMode chế độ so khớp ngày trên hàng tiêu đề
type MatchMode string

const (
	// MatchExact so khớp chuỗi tuyệt đối sau khi trim — "02" KHÔNG khớp ngày 2
	MatchExact MatchMode = "exact"
	// MatchNumeric so khớp theo giá trị số — "02" khớp ngày 2
	MatchNumeric MatchMode = "numeric"
)

// Layout vị trí dữ liệu trong sheet điểm danh (chỉ số 0-based)
// Khai báo thành cấu hình thay vì hằng số chôn trong code để có thể
// kiểm thử với các bố cục khác nhau mà không cần sửa code.
type Layout struct {
	HeaderRow    int       `toml:"header_row" json:"headerRow"`       // hàng chứa số ngày trong tháng
	DataStartRow int       `toml:"data_start_row" json:"dataStartRow"` // hàng đầu tiên có dữ liệu nhân viên
	NameCol      int       `toml:"name_col" json:"nameCol"`           // cột chứa tên nhân viên
	RowStep      int       `toml:"row_step" json:"rowStep"`           // số hàng cho mỗi nhân viên
	DayMatch     MatchMode `toml:"day_match" json:"dayMatch"`
}

// DefaultLayout bố cục mặc định theo file chấm công máy xuất ra
func DefaultLayout() Layout {
	return Layout{
		HeaderRow:    3,
		DataStartRow: 6,
		NameCol:      0,
		RowStep:      2,
		DayMatch:     MatchExact,
	}
}

// Validate kiểm tra các ràng buộc tối thiểu của bố cục
func (l Layout) Validate() error {
	if l.HeaderRow < 0 || l.DataStartRow < 0 || l.NameCol < 0 {
		return fmt.Errorf("layout: chỉ số hàng/cột phải >= 0")
	}
	if l.RowStep < 1 {
		return fmt.Errorf("layout: row_step phải >= 1")
	}
	switch l.DayMatch {
	case MatchExact, MatchNumeric, "":
		return nil
	default:
		return fmt.Errorf("layout: day_match không hợp lệ: %q", l.DayMatch)
	}
}

// ClassificationResult kết quả phân loại cho một ngày
// Hai danh sách giữ nguyên thứ tự gặp trong sheet, không khử trùng lặp.
type ClassificationResult struct {
	Late   []string `json:"late"`
	Absent []string `json:"absent"`
}

// TimeOfDay thời điểm trong ngày, tính bằng giây từ 00:00
type TimeOfDay int

// ParseTimeOfDay phân tích chuỗi "HH:MM" hoặc "HH:MM:SS"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("định dạng giờ không hợp lệ: %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("định dạng giờ không hợp lệ: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("định dạng giờ không hợp lệ: %q", s)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("định dạng giờ không hợp lệ: %q", s)
		}
	}

	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// After trả về true nếu t muộn hơn u (so sánh chặt chẽ)
func (t TimeOfDay) After(u TimeOfDay) bool {
	return t > u
}

// String định dạng lại "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/3600, int(t)%3600/60)
}
