package parser

import "errors"

// Các lỗi cấu trúc của giai đoạn đọc file và phân loại.
// Lỗi từng dòng (giờ không phân tích được, ô ngoài lưới...) không nằm ở đây:
// chúng chỉ được ghi cảnh báo rồi bỏ qua, không làm hỏng cả lần chạy.
var (
	// ErrWorkbookNotFound file điểm danh không tồn tại
	ErrWorkbookNotFound = errors.New("không tìm thấy file điểm danh")
	// ErrWorkbookInvalid file tồn tại nhưng không đọc được như một workbook
	ErrWorkbookInvalid = errors.New("không đọc được file Excel")
	// ErrHeaderRowMissing lưới không có hàng tiêu đề ngày theo bố cục khai báo
	ErrHeaderRowMissing = errors.New("file không có hàng tiêu đề ngày")
	// ErrDayColumnNotFound không tìm thấy cột cho ngày cần kiểm tra
	ErrDayColumnNotFound = errors.New("không tìm thấy cột ngày")
	// ErrTimeColumnNotFound cột giờ vào (ngay sau cột ngày) vượt quá bề rộng lưới
	ErrTimeColumnNotFound = errors.New("không tìm thấy cột giờ vào")
)

// Cell một ô trong lưới điểm danh, giữ nguyên giá trị gốc
type Cell struct {
	Text string
}

// IsEmpty ô trống hoặc chỉ chứa khoảng trắng — tương đương NaN của file nguồn
func (c Cell) IsEmpty() bool {
	for _, r := range c.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
