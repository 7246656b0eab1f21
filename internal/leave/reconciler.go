// Package leave lọc những người đã xin nghỉ phép khỏi danh sách vắng.
//
// Chính sách fail-open có chủ đích: file nghỉ phép không đọc được thì giữ
// nguyên danh sách vắng thay vì chặn cả pipeline hoặc "miễn phạt" nhầm cho
// tất cả mọi người. Các file đầu vào khác của pipeline đều fail-closed.
package leave

import (
	"bufio"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LoadSet đọc file nghỉ phép: mỗi dòng không trống là một tên, đã trim
func LoadSet(path string) (map[string]struct{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Filter trả về danh sách vắng sau khi loại người có trong file nghỉ phép.
// Giữ nguyên thứ tự, không khử trùng lặp. File không đọc được => cảnh báo
// và trả về danh sách gốc (fail-open).
func Filter(absent []string, path string, log zerolog.Logger) []string {
	set, err := LoadSet(path)
	if err != nil {
		log.Warn().
			Str("file", path).
			Err(err).
			Msg("không đọc được file nghỉ phép, sẽ không loại trừ ai")
		return absent
	}

	filtered := make([]string, 0, len(absent))
	for _, name := range absent {
		if _, onLeave := set[name]; onLeave {
			continue
		}
		filtered = append(filtered, name)
	}
	return filtered
}
