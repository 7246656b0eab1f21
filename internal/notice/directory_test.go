package notice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emails.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadDirectory_Basic(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "ten,email\nAlice,alice@clb.vn\nBob,bob@clb.vn\n")

	dir, err := LoadDirectory(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dir["Alice"] != "alice@clb.vn" || dir["Bob"] != "bob@clb.vn" {
		t.Fatalf("dir = %v", dir)
	}
}

func TestLoadDirectory_MissingEmailColumn(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "ten,sdt\nAlice,0901\n")

	_, err := LoadDirectory(path, zerolog.Nop())
	if !errors.Is(err, ErrDirectoryMissingColumns) {
		t.Fatalf("err = %v, want ErrDirectoryMissingColumns", err)
	}
}

func TestLoadDirectory_FileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadDirectory(filepath.Join(t.TempDir(), "x.csv"), zerolog.Nop())
	if !errors.Is(err, ErrDirectoryUnreadable) {
		t.Fatalf("err = %v, want ErrDirectoryUnreadable", err)
	}
}

func TestLoadDirectory_DuplicateNameFirstWins(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "ten,email\nAlice,dau@clb.vn\nAlice,sau@clb.vn\n")

	dir, err := LoadDirectory(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dir["Alice"] != "dau@clb.vn" {
		t.Fatalf("dir[Alice] = %s, tên trùng phải lấy email gặp trước", dir["Alice"])
	}
}

func TestLoadDirectory_InvalidEmailsDropped(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "ten,email\nAlice,khong-phai-email\nBob,\nChi,chi@clb.vn\n")

	dir, err := LoadDirectory(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(dir) != 1 || dir["Chi"] != "chi@clb.vn" {
		t.Fatalf("dir = %v, chỉ Chi có email hợp lệ", dir)
	}
}

func TestLoadDirectory_NameColumnOptional(t *testing.T) {
	t.Parallel()

	// Thiếu cột tên: dùng chính địa chỉ email làm tên
	path := writeCSV(t, "email\nalice@clb.vn\n")

	dir, err := LoadDirectory(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dir["alice@clb.vn"] != "alice@clb.vn" {
		t.Fatalf("dir = %v", dir)
	}
}

func TestLoadDirectory_AcceptsNameHeaderAlias(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "name,email\nAlice,alice@clb.vn\n")

	dir, err := LoadDirectory(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dir["Alice"] != "alice@clb.vn" {
		t.Fatalf("dir = %v", dir)
	}
}
