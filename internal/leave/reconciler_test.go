package leave

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func writeLeaveFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leave_requests.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFilter_RemovesOnLeave(t *testing.T) {
	t.Parallel()

	path := writeLeaveFile(t, "Alice\n\n  Chi  \n")

	got := Filter([]string{"Alice", "Bob", "Chi"}, path, zerolog.Nop())
	if !reflect.DeepEqual(got, []string{"Bob"}) {
		t.Fatalf("filtered = %v, want [Bob]", got)
	}
}

func TestFilter_SubsequencePreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	path := writeLeaveFile(t, "Bob\n")

	got := Filter([]string{"Chi", "Bob", "An", "Chi"}, path, zerolog.Nop())
	if !reflect.DeepEqual(got, []string{"Chi", "An", "Chi"}) {
		t.Fatalf("filtered = %v, muốn giữ thứ tự và trùng lặp", got)
	}
}

func TestFilter_FailOpenOnMissingFile(t *testing.T) {
	t.Parallel()

	absent := []string{"Alice", "Bob"}
	got := Filter(absent, filepath.Join(t.TempDir(), "khong_co.txt"), zerolog.Nop())
	if !reflect.DeepEqual(got, absent) {
		t.Fatalf("filtered = %v, file hỏng phải trả về danh sách gốc", got)
	}
}

func TestLoadSet_TrimsAndSkipsBlankLines(t *testing.T) {
	t.Parallel()

	path := writeLeaveFile(t, " Alice \n\n\nBob\n   \n")

	set, err := LoadSet(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
	if _, ok := set["Alice"]; !ok {
		t.Fatalf("thiếu Alice trong set (phải được trim)")
	}
}
