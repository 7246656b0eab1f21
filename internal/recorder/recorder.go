// Package recorder ghi lại mỗi lần chạy kiểm tra vào một file log văn bản
// thuần, mỗi lần chạy là một khối phân tách bởi dòng 50 dấu '='.
// Log chỉ append, không sửa; đây là nơi duy nhất pipeline ghi ra đĩa.
package recorder

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/TagiaHuy/SendEmail/internal/model"
)

// Delimiter dòng phân tách giữa hai lần chạy trong file log
var Delimiter = strings.Repeat("=", 50)

const timeLayout = "2006-01-02 15:04:05"

// Recorder bên ghi log chạy
type Recorder struct {
	path string
}

// New tạo recorder ghi vào file log cho trước
func New(path string) *Recorder {
	return &Recorder{path: path}
}

// Append ghi một lần chạy vào cuối file log
func (r *Recorder) Append(entry model.RunEntry) error {
	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("không mở được file log %s: %w", r.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(Format(entry)); err != nil {
		return fmt.Errorf("không ghi được log: %w", err)
	}
	return nil
}

// Format dựng khối văn bản cho một lần chạy
func Format(entry model.RunEntry) string {
	var b strings.Builder

	loggedAt := entry.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	fmt.Fprintf(&b, "Thời gian ghi log: %s\n", loggedAt.Format(timeLayout))
	if entry.RunID != "" {
		fmt.Fprintf(&b, "Mã lần chạy: %s\n", entry.RunID)
	}
	fmt.Fprintf(&b, "Ngày kiểm tra: %d\n", entry.Day)
	fmt.Fprintf(&b, "Giờ vào chuẩn: %s\n", entry.Cutoff)
	fmt.Fprintf(&b, "Danh sách đi muộn: %s\n", joinNames(entry.Late))
	fmt.Fprintf(&b, "Danh sách vắng (sau khi lọc): %s\n", joinNames(entry.Absent))

	b.WriteString("Kết quả gửi email:\n")
	if len(entry.Outcomes) == 0 {
		b.WriteString("  (không có email nào được gửi)\n")
	} else {
		emails := make([]string, 0, len(entry.Outcomes))
		for email := range entry.Outcomes {
			emails = append(emails, email)
		}
		sort.Strings(emails)
		for _, email := range emails {
			fmt.Fprintf(&b, "  - %s: %s\n", email, entry.Outcomes[email])
		}
	}

	b.WriteString(Delimiter + "\n")
	return b.String()
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "(không có)"
	}
	return strings.Join(names, ", ")
}

// History đọc lại file log, trả về các khối theo thứ tự ghi.
// File chưa tồn tại không phải lỗi: chưa có lịch sử.
func (r *Recorder) History() ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("không đọc được file log %s: %w", r.path, err)
	}

	blocks := strings.Split(string(data), Delimiter)
	entries := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		entries = append(entries, block)
	}
	return entries, nil
}
