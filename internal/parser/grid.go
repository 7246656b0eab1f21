package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// AttendanceGrid lưới điểm danh bất biến, đọc một lần cho mỗi lần chạy.
// Chỉ số hàng/cột 0-based; truy cập ngoài phạm vi trả về ok=false thay vì panic.
type AttendanceGrid struct {
	rows [][]string
	cols int
}

// LoadGrid đọc sheet đầu tiên của file điểm danh thành lưới
func LoadGrid(path string) (*AttendanceGrid, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookInvalid, err)
	}
	defer file.Close()

	return gridFromWorkbook(file)
}

// LoadGridReader đọc lưới từ một stream (file tải lên qua HTTP)
func LoadGridReader(r io.Reader) (*AttendanceGrid, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookInvalid, err)
	}
	defer file.Close()

	return gridFromWorkbook(file)
}

func gridFromWorkbook(file *excelize.File) (*AttendanceGrid, error) {
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook không có sheet nào", ErrWorkbookInvalid)
	}

	// File chấm công chỉ có một sheet dữ liệu; luôn lấy sheet đầu tiên
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookInvalid, err)
	}

	return NewGrid(rows), nil
}

// NewGrid tạo lưới từ dữ liệu hàng thô (dùng trực tiếp trong test)
func NewGrid(rows [][]string) *AttendanceGrid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return &AttendanceGrid{rows: rows, cols: cols}
}

// Rows số hàng của lưới
func (g *AttendanceGrid) Rows() int {
	return len(g.rows)
}

// Cols bề rộng lưới (hàng dài nhất)
func (g *AttendanceGrid) Cols() int {
	return g.cols
}

// Cell trả về ô tại (row, col); ok=false khi tọa độ nằm ngoài lưới.
// Hàng ngắn hơn bề rộng lưới vẫn trả về ô trống: excelize cắt các ô
// trống cuối hàng, nhưng về mặt dữ liệu đó là ô trống chứ không phải
// ô ngoài phạm vi.
func (g *AttendanceGrid) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.cols {
		return Cell{}, false
	}
	if col >= len(g.rows[row]) {
		return Cell{}, true
	}
	return Cell{Text: g.rows[row][col]}, true
}
