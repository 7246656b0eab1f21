package notice

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// MergePolicy cách xử lý khi hai thông báo cùng rơi vào một địa chỉ email.
// Trong một lần chạy, người vừa đi muộn vừa vắng sẽ sinh hai thông báo cho
// cùng địa chỉ; chính sách này quyết định bản nào được giữ.
type MergePolicy string

const (
	// MergeLastWriteWins bản sau ghi đè bản trước — mặc định: lượt đi muộn
	// chạy trước lượt vắng, nên thông báo vắng thắng
	MergeLastWriteWins MergePolicy = "last-write-wins"
	// MergeFirstWriteWins bản đầu tiên được giữ
	MergeFirstWriteWins MergePolicy = "first-write-wins"
	// MergeErrorOnConflict trùng địa chỉ là lỗi
	MergeErrorOnConflict MergePolicy = "error-on-conflict"
)

// Violation nhãn vi phạm và mức phạt dùng khi thay thế vào mẫu
type Violation struct {
	Reason string
	Amount string
}

// Batch kết quả sinh thông báo: địa chỉ email -> nội dung đã thay thế
type Batch map[string]string

// Options đầu vào của một lượt sinh thông báo
type Options struct {
	DirectoryPath string
	TemplatePath  string
	Late          Violation
	Absent        Violation
	Count         string // số lần vi phạm ghi vào thông báo
	DaysToHandle  int    // hạn xử lý = hôm nay + số ngày này
	Policy        MergePolicy
	Now           func() time.Time // nil thì dùng time.Now
}

// Generate sinh nội dung thông báo cho từng người vi phạm.
//
// Lượt đi muộn xử lý trước, lượt vắng sau; với chính sách last-write-wins
// mặc định, người có cả hai lỗi chỉ nhận thông báo vắng. Người không có
// email hợp lệ trong danh bạ bị bỏ qua với một cảnh báo. Mẫu hoặc danh bạ
// không đọc được trả về batch rỗng kèm lỗi mô tả nguyên nhân.
func Generate(late, absent []string, opts Options, log zerolog.Logger) (Batch, error) {
	tmpl, err := LoadTemplate(opts.TemplatePath)
	if err != nil {
		return Batch{}, err
	}
	dir, err := LoadDirectory(opts.DirectoryPath, log)
	if err != nil {
		return Batch{}, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	deadline := now().AddDate(0, 0, opts.DaysToHandle).Format("02/01/2006")

	policy := opts.Policy
	if policy == "" {
		policy = MergeLastWriteWins
	}

	batch := Batch{}

	render := func(names []string, v Violation) error {
		for _, name := range names {
			email, ok := dir[name]
			if !ok {
				log.Warn().
					Str("ten", name).
					Str("file", opts.DirectoryPath).
					Msg("không tìm thấy email trong danh bạ, bỏ qua")
				continue
			}

			body := tmpl.Render(Substitution{
				MemberName: name,
				Reason:     v.Reason,
				Count:      opts.Count,
				Amount:     v.Amount,
				Deadline:   deadline,
			})

			if _, exists := batch[email]; exists {
				switch policy {
				case MergeFirstWriteWins:
					continue
				case MergeErrorOnConflict:
					return fmt.Errorf("trùng địa chỉ nhận %s (người: %s)", email, name)
				}
			}
			batch[email] = body
		}
		return nil
	}

	if err := render(late, opts.Late); err != nil {
		return Batch{}, err
	}
	if err := render(absent, opts.Absent); err != nil {
		return Batch{}, err
	}

	return batch, nil
}
