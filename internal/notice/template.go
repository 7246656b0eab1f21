package notice

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrTemplateUnreadable không đọc được file mẫu email
var ErrTemplateUnreadable = errors.New("không đọc được file mẫu email")

// Các token trong file mẫu. Token không có giá trị thay thế được giữ
// nguyên văn trong kết quả — đây là hợp đồng tường minh, không phải lỗi.
const (
	TokenMemberName = "[Tên thành viên]"
	TokenReason     = "[Ví dụ: Đi họp muộn, nghỉ không phép, chưa đóng quỹ…]"
	TokenCount      = "[Số lần]"
	TokenAmount     = "[Số tiền]"
	TokenDeadline   = "[ngày/tháng/năm]"
)

// Template mẫu email thông báo vi phạm, đọc một lần cho mỗi lần chạy
type Template struct {
	text string
}

// LoadTemplate đọc file mẫu email
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)
	}
	return &Template{text: string(data)}, nil
}

// NewTemplate tạo mẫu từ chuỗi (dùng trong test)
func NewTemplate(text string) *Template {
	return &Template{text: text}
}

// Substitution ngữ cảnh thay thế cho một người vi phạm
type Substitution struct {
	MemberName string
	Reason     string
	Count      string
	Amount     string
	Deadline   string // hạn xử lý, định dạng dd/mm/yyyy
}

// Render thay toàn bộ token trong một lượt duyệt duy nhất
func (t *Template) Render(sub Substitution) string {
	replacer := strings.NewReplacer(
		TokenMemberName, sub.MemberName,
		TokenReason, sub.Reason,
		TokenCount, sub.Count,
		TokenAmount, sub.Amount,
		TokenDeadline, sub.Deadline,
	)
	return replacer.Replace(t.text)
}
