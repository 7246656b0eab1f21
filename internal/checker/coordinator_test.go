package checker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/TagiaHuy/SendEmail/internal/config"
	"github.com/TagiaHuy/SendEmail/internal/model"
	"github.com/TagiaHuy/SendEmail/internal/parser"
	"github.com/TagiaHuy/SendEmail/internal/recorder"
)

// fakeTransport gửi giả: tất cả thành công, ghi lại batch đã nhận
type fakeTransport struct {
	sent map[string]string
}

func (f *fakeTransport) SendBatch(batch map[string]string, onResult func(email, status string)) map[string]string {
	f.sent = batch

	emails := make([]string, 0, len(batch))
	for email := range batch {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	outcomes := make(map[string]string, len(batch))
	for _, email := range emails {
		outcomes[email] = model.SendStatusOK
		if onResult != nil {
			onResult(email, model.SendStatusOK)
		}
	}
	return outcomes
}

// writeAttendance dựng workbook theo bố cục mặc định: tiêu đề hàng 4 (1-based),
// dữ liệu từ hàng 7, mỗi người 2 hàng, giờ vào ở cột F (sau cột ngày "2" ở E)
func writeAttendance(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	set := func(cell string, value interface{}) {
		t.Helper()
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}

	set("A4", "Họ tên")
	set("D4", "1")
	set("E4", "2")

	set("A7", "Alice")
	set("F7", "19:30")
	set("A9", "Bob")
	set("A11", "Chi")

	path := filepath.Join(dir, "attendance.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func fixtureConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	cfg := config.DefaultConfig()
	cfg.Files.Attendance = writeAttendance(t, dir)
	cfg.Files.Leave = write("leave_requests.txt", "Chi\n")
	cfg.Files.Emails = write("emails.csv", "ten,email\nAlice,alice@clb.vn\nBob,bob@clb.vn\n")
	cfg.Files.Template = write("Mau_Email.txt",
		"Gửi [Tên thành viên]: [Ví dụ: Đi họp muộn, nghỉ không phép, chưa đóng quỹ…], phạt [Số tiền], hạn [ngày/tháng/năm].")
	cfg.Files.Log = filepath.Join(dir, "email_logs.txt")
	return cfg
}

func TestCheck_FullPipeline(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t)
	c := NewCoordinator(cfg, &fakeTransport{}, recorder.New(cfg.Files.Log), zerolog.Nop())

	report, err := c.Check(CheckOptions{Day: 2, Cutoff: "18:00"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if !reflect.DeepEqual(report.Late, []string{"Alice"}) {
		t.Fatalf("late = %v, want [Alice]", report.Late)
	}
	if !reflect.DeepEqual(report.AbsentRaw, []string{"Bob", "Chi"}) {
		t.Fatalf("absentRaw = %v, want [Bob Chi]", report.AbsentRaw)
	}
	// Chi có trong file nghỉ phép nên bị loại khỏi danh sách vắng
	if !reflect.DeepEqual(report.Absent, []string{"Bob"}) {
		t.Fatalf("absent = %v, want [Bob]", report.Absent)
	}

	if len(report.Emails) != 2 {
		t.Fatalf("emails = %v, want 2 thông báo", report.Emails)
	}
	if !strings.Contains(report.Emails["alice@clb.vn"], "Đi muộn") {
		t.Fatalf("thông báo cho Alice sai:\n%s", report.Emails["alice@clb.vn"])
	}
	if !strings.Contains(report.Emails["bob@clb.vn"], "Vắng không phép") {
		t.Fatalf("thông báo cho Bob sai:\n%s", report.Emails["bob@clb.vn"])
	}
	if report.RunID == "" {
		t.Fatalf("thiếu RunID")
	}
}

func TestCheck_DayNotInSheet(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t)
	c := NewCoordinator(cfg, &fakeTransport{}, recorder.New(cfg.Files.Log), zerolog.Nop())

	_, err := c.Check(CheckOptions{Day: 15, Cutoff: "18:00"})
	if !errors.Is(err, parser.ErrDayColumnNotFound) {
		t.Fatalf("err = %v, want ErrDayColumnNotFound", err)
	}
}

func TestCheck_AttendanceMissing(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t)
	cfg.Files.Attendance = filepath.Join(t.TempDir(), "khong_co.xlsx")
	c := NewCoordinator(cfg, &fakeTransport{}, recorder.New(cfg.Files.Log), zerolog.Nop())

	_, err := c.Check(CheckOptions{Day: 2, Cutoff: "18:00"})
	if !errors.Is(err, parser.ErrWorkbookNotFound) {
		t.Fatalf("err = %v, want ErrWorkbookNotFound", err)
	}
}

func TestCheck_InvalidDayAndCutoff(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t)
	c := NewCoordinator(cfg, &fakeTransport{}, recorder.New(cfg.Files.Log), zerolog.Nop())

	if _, err := c.Check(CheckOptions{Day: 32, Cutoff: "18:00"}); err == nil {
		t.Fatalf("ngày 32 phải bị từ chối")
	}
	if _, err := c.Check(CheckOptions{Day: 2, Cutoff: "25:99"}); err == nil {
		t.Fatalf("giờ chuẩn hỏng phải bị từ chối")
	}
}

func TestSend_StreamsEventsAndAppendsLog(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t)
	rec := recorder.New(cfg.Files.Log)
	transport := &fakeTransport{}
	c := NewCoordinator(cfg, transport, rec, zerolog.Nop())

	report, err := c.Check(CheckOptions{Day: 2, Cutoff: "18:00"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	types := []string{}
	for event := range c.Send(report) {
		types = append(types, event.Type)
	}

	want := []string{"start", "sent", "sent", "logged", "done"}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("chuỗi sự kiện = %v, want %v", types, want)
	}
	if len(transport.sent) != 2 {
		t.Fatalf("transport nhận %d email, want 2", len(transport.sent))
	}

	entries, err := rec.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log có %d khối, want 1", len(entries))
	}
	for _, want := range []string{
		"Ngày kiểm tra: 2",
		"Giờ vào chuẩn: 18:00",
		"Danh sách đi muộn: Alice",
		"Danh sách vắng (sau khi lọc): Bob",
		fmt.Sprintf("alice@clb.vn: %s", model.SendStatusOK),
	} {
		if !strings.Contains(entries[0], want) {
			t.Fatalf("khối log thiếu %q:\n%s", want, entries[0])
		}
	}
}

func TestCheck_NoViolatorsSkipsGeneration(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t)
	// Mẫu email hỏng cũng không sao vì không có ai vi phạm => không sinh thông báo
	cfg.Files.Template = filepath.Join(t.TempDir(), "khong_co.txt")
	// Tất cả đều nghỉ phép, Alice đúng giờ
	if err := os.WriteFile(cfg.Files.Leave, []byte("Bob\nChi\n"), 0644); err != nil {
		t.Fatalf("write leave: %v", err)
	}

	f, err := excelize.OpenFile(cfg.Files.Attendance)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "F7", "17:00"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.Close()

	report, err := NewCoordinator(cfg, &fakeTransport{}, recorder.New(cfg.Files.Log), zerolog.Nop()).
		Check(CheckOptions{Day: 2, Cutoff: "18:00"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(report.Late) != 0 || len(report.Absent) != 0 || len(report.Emails) != 0 {
		t.Fatalf("report = %+v, muốn không có vi phạm và batch rỗng", report)
	}
}
