package notice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrDirectoryUnreadable không đọc được file danh bạ email
	ErrDirectoryUnreadable = errors.New("không đọc được file danh bạ email")
	// ErrDirectoryMissingColumns file danh bạ thiếu cột bắt buộc
	ErrDirectoryMissingColumns = errors.New("file danh bạ phải chứa cột 'email'")
)

// Directory danh bạ tên -> địa chỉ email
type Directory map[string]string

// LoadDirectory đọc file CSV danh bạ.
// Cột 'email' bắt buộc; cột 'ten' (hoặc 'name') tùy chọn — thiếu thì dùng
// chính địa chỉ email làm tên. Tên trùng lặp lấy email xuất hiện trước.
// Email trống hoặc không chứa '@' bị loại với một cảnh báo.
func LoadDirectory(path string, log zerolog.Logger) (Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnreadable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnreadable, err)
	}
	if len(records) == 0 {
		return nil, ErrDirectoryMissingColumns
	}

	// Tra cột theo tên trên hàng tiêu đề
	emailCol := -1
	nameCol := -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			if emailCol < 0 {
				emailCol = i
			}
		case "ten", "name":
			if nameCol < 0 {
				nameCol = i
			}
		}
	}
	if emailCol < 0 {
		return nil, ErrDirectoryMissingColumns
	}

	dir := make(Directory)
	for rowNo, record := range records[1:] {
		if emailCol >= len(record) {
			continue
		}
		email := strings.TrimSpace(record[emailCol])

		name := email
		if nameCol >= 0 && nameCol < len(record) {
			name = strings.TrimSpace(record[nameCol])
		}
		if name == "" {
			continue
		}

		if email == "" || !strings.Contains(email, "@") {
			log.Warn().
				Str("ten", name).
				Str("email", email).
				Int("dong", rowNo+2).
				Msg("email không hợp lệ trong danh bạ, bỏ qua")
			continue
		}

		// Tên trùng: giữ email gặp trước
		if _, exists := dir[name]; exists {
			continue
		}
		dir[name] = email
	}

	return dir, nil
}
