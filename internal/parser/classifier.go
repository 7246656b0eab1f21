package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TagiaHuy/SendEmail/internal/model"
)

// Classifier phân loại đi muộn / vắng trên lưới điểm danh theo bố cục khai báo
type Classifier struct {
	layout model.Layout
	log    zerolog.Logger
}

// NewClassifier tạo classifier với bố cục cho trước
func NewClassifier(layout model.Layout, log zerolog.Logger) *Classifier {
	return &Classifier{layout: layout, log: log}
}

// Classify phân loại toàn bộ nhân viên cho một ngày so với giờ chuẩn.
//
// Quy tắc: ô giờ vào trống => vắng; có giờ và muộn hơn giờ chuẩn (so sánh
// chặt chẽ) => đi muộn; có giờ và không muộn hơn => đúng giờ, không ghi nhận;
// có chữ nhưng không phân tích được thành giờ => cảnh báo rồi bỏ qua,
// không xếp vào danh sách nào. Thứ tự gặp trong sheet được giữ nguyên.
func (c *Classifier) Classify(grid *AttendanceGrid, day int, cutoff model.TimeOfDay) (*model.ClassificationResult, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: lưới rỗng", ErrHeaderRowMissing)
	}
	if err := c.layout.Validate(); err != nil {
		return nil, err
	}
	if c.layout.HeaderRow >= grid.Rows() {
		return nil, fmt.Errorf("%w (hàng index %d)", ErrHeaderRowMissing, c.layout.HeaderRow)
	}

	dayCol, err := c.findDayColumn(grid, day)
	if err != nil {
		return nil, err
	}

	// Cột giờ vào nằm ngay sau cột ngày
	timeCol := dayCol + 1
	if timeCol >= grid.Cols() {
		return nil, fmt.Errorf("%w: dự kiến tại index %d sau cột ngày %d", ErrTimeColumnNotFound, timeCol, day)
	}

	result := &model.ClassificationResult{
		Late:   []string{},
		Absent: []string{},
	}

	for row := c.layout.DataStartRow; row < grid.Rows(); row += c.layout.RowStep {
		nameCell, ok := grid.Cell(row, c.layout.NameCol)
		if !ok || nameCell.IsEmpty() {
			// Hàng không có tên: dòng trống hoặc phần đệm cuối file, bỏ qua
			continue
		}
		name := strings.TrimSpace(nameCell.Text)

		timeCell, ok := grid.Cell(row, timeCol)
		if !ok {
			c.log.Warn().
				Str("nhan_vien", name).
				Int("hang", row+1).
				Msg("ô giờ vào nằm ngoài lưới, bỏ qua nhân viên này")
			continue
		}

		if timeCell.IsEmpty() {
			result.Absent = append(result.Absent, name)
			continue
		}

		timeIn, err := parseTimeCell(timeCell.Text)
		if err != nil {
			c.log.Warn().
				Str("nhan_vien", name).
				Int("hang", row+1).
				Str("gia_tri", timeCell.Text).
				Msg("không phân tích được giờ vào, bỏ qua")
			continue
		}

		if timeIn.After(cutoff) {
			result.Late = append(result.Late, name)
		}
		// Đúng giờ: không ghi nhận vào danh sách nào
	}

	return result, nil
}

// findDayColumn quét hàng tiêu đề từ trái sang phải, lấy cột đầu tiên khớp ngày
func (c *Classifier) findDayColumn(grid *AttendanceGrid, day int) (int, error) {
	want := strconv.Itoa(day)

	for col := 0; col < grid.Cols(); col++ {
		cell, ok := grid.Cell(c.layout.HeaderRow, col)
		if !ok || cell.IsEmpty() {
			continue
		}
		if c.dayMatches(strings.TrimSpace(cell.Text), want, day) {
			return col, nil
		}
	}

	return 0, fmt.Errorf("%w: không thấy ngày %d trên hàng %d", ErrDayColumnNotFound, day, c.layout.HeaderRow+1)
}

// dayMatches so khớp một ô tiêu đề với ngày cần tìm theo chế độ khai báo.
// Mặc định là exact: "02" không khớp ngày 2 — giữ nguyên hành vi của file
// nguồn, người dùng phải nhập đúng cách ghi trong sheet.
func (c *Classifier) dayMatches(header, want string, day int) bool {
	switch c.layout.DayMatch {
	case model.MatchNumeric:
		n, err := strconv.Atoi(header)
		return err == nil && n == day
	default:
		return header == want
	}
}

// parseTimeCell phân tích giá trị ô giờ vào thành thời điểm trong ngày.
// Chấp nhận "HH:MM", "HH:MM:SS", "h:mm AM/PM" (excelize định dạng lại ô kiểu
// giờ theo format của workbook) và phân số ngày kiểu Excel ("0.8125" = 19:30).
func parseTimeCell(text string) (model.TimeOfDay, error) {
	text = strings.TrimSpace(text)

	if t, err := model.ParseTimeOfDay(text); err == nil {
		return t, nil
	}

	if t, err := time.Parse("3:04 PM", text); err == nil {
		return model.TimeOfDay(t.Hour()*3600 + t.Minute()*60), nil
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil && f >= 0 {
		frac := f - math.Floor(f)
		return model.TimeOfDay(int(math.Round(frac * 86400))), nil
	}

	return 0, fmt.Errorf("không phân tích được giờ: %q", text)
}
