// Package checker điều phối pipeline kiểm tra điểm danh:
// đọc lưới -> phân loại -> lọc nghỉ phép -> sinh thông báo -> gửi -> ghi log.
package checker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/TagiaHuy/SendEmail/internal/config"
	"github.com/TagiaHuy/SendEmail/internal/leave"
	"github.com/TagiaHuy/SendEmail/internal/mailer"
	"github.com/TagiaHuy/SendEmail/internal/model"
	"github.com/TagiaHuy/SendEmail/internal/notice"
	"github.com/TagiaHuy/SendEmail/internal/parser"
	"github.com/TagiaHuy/SendEmail/internal/recorder"
)

// Coordinator điều phối một lần chạy kiểm tra
type Coordinator struct {
	cfg       *config.AppConfig
	transport mailer.Transport
	rec       *recorder.Recorder
	log       zerolog.Logger
}

// NewCoordinator tạo coordinator với các bên cộng tác đã nối dây sẵn
func NewCoordinator(cfg *config.AppConfig, transport mailer.Transport, rec *recorder.Recorder, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		cfg:       cfg,
		transport: transport,
		rec:       rec,
		log:       log,
	}
}

// CheckOptions đầu vào một lần kiểm tra; trường rỗng lấy theo cấu hình
type CheckOptions struct {
	AttendancePath string // "" => đường dẫn trong config
	Day            int    // 0  => ngày hôm qua
	Cutoff         string // "" => giờ chuẩn trong config
}

// CheckReport kết quả một lần kiểm tra, đủ dữ liệu để hiển thị và gửi
type CheckReport struct {
	RunID     string       `json:"runId"`
	Day       int          `json:"day"`
	Cutoff    string       `json:"cutoff"`
	Late      []string     `json:"late"`
	AbsentRaw []string     `json:"absentRaw"` // danh sách vắng trước khi lọc nghỉ phép
	Absent    []string     `json:"absent"`    // sau khi lọc
	Emails    notice.Batch `json:"emails"`
}

// Check chạy các giai đoạn đọc-phân loại-lọc-sinh thông báo.
// Lỗi cấu trúc (file thiếu, không thấy cột ngày, danh bạ thiếu cột...)
// được trả nguyên kind để bên gọi hiển thị đúng nguyên nhân.
func (c *Coordinator) Check(opts CheckOptions) (*CheckReport, error) {
	day := opts.Day
	if day == 0 {
		// Mặc định kiểm tra ngày hôm qua, như thói quen chạy mỗi sáng
		day = time.Now().AddDate(0, 0, -1).Day()
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("ngày cần kiểm tra không hợp lệ: %d", day)
	}

	cutoffStr := opts.Cutoff
	if cutoffStr == "" {
		cutoffStr = c.cfg.Business.DefaultCutoff
	}
	cutoff, err := model.ParseTimeOfDay(cutoffStr)
	if err != nil {
		return nil, err
	}

	attendancePath := opts.AttendancePath
	if attendancePath == "" {
		attendancePath = config.ResolvePath(c.cfg.Files.Attendance)
	}

	grid, err := parser.LoadGrid(attendancePath)
	if err != nil {
		return nil, err
	}

	classifier := parser.NewClassifier(c.cfg.Layout, c.log)
	result, err := classifier.Classify(grid, day, cutoff)
	if err != nil {
		return nil, err
	}

	absent := leave.Filter(result.Absent, config.ResolvePath(c.cfg.Files.Leave), c.log)

	report := &CheckReport{
		RunID:     uuid.New().String(),
		Day:       day,
		Cutoff:    cutoff.String(),
		Late:      result.Late,
		AbsentRaw: result.Absent,
		Absent:    absent,
		Emails:    notice.Batch{},
	}

	if len(report.Late) == 0 && len(report.Absent) == 0 {
		return report, nil
	}

	batch, err := notice.Generate(report.Late, report.Absent, notice.Options{
		DirectoryPath: config.ResolvePath(c.cfg.Files.Emails),
		TemplatePath:  config.ResolvePath(c.cfg.Files.Template),
		Late:          notice.Violation{Reason: c.cfg.Business.LateReason, Amount: c.cfg.Business.LateFine},
		Absent:        notice.Violation{Reason: c.cfg.Business.AbsentReason, Amount: c.cfg.Business.AbsentFine},
		Count:         c.cfg.Business.Count,
		DaysToHandle:  c.cfg.Business.DaysToHandle,
		Policy:        notice.MergePolicy(c.cfg.Business.MergePolicy),
	}, c.log)
	if err != nil {
		return nil, err
	}
	report.Emails = batch

	return report, nil
}

// ProgressEvent sự kiện tiến độ của lượt gửi email
type ProgressEvent struct {
	Type      string      `json:"type"` // start/sent/error/logged/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Send gửi batch của một báo cáo rồi ghi log, trả về kênh tiến độ.
// Kênh được đóng khi lượt gửi kết thúc.
func (c *Coordinator) Send(report *CheckReport) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doSend(report, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doSend(report *CheckReport, progressChan chan ProgressEvent) {
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("Bắt đầu gửi %d email", len(report.Emails)),
		Data:      map[string]int{"total": len(report.Emails)},
		Timestamp: time.Now(),
	})

	outcomes := c.transport.SendBatch(report.Emails, func(email, status string) {
		eventType := "sent"
		if status != model.SendStatusOK {
			eventType = "error"
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      eventType,
			Message:   fmt.Sprintf("%s: %s", email, status),
			Data:      map[string]string{"email": email, "status": status},
			Timestamp: time.Now(),
		})
	})

	entry := model.RunEntry{
		RunID:    report.RunID,
		LoggedAt: time.Now(),
		Day:      report.Day,
		Cutoff:   report.Cutoff,
		Late:     report.Late,
		Absent:   report.Absent,
		Outcomes: outcomes,
	}
	if err := c.rec.Append(entry); err != nil {
		c.log.Warn().Err(err).Msg("ghi log lần chạy thất bại")
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("Ghi log thất bại: %v", err),
			Timestamp: time.Now(),
		})
	} else {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "logged",
			Message:   "Đã ghi log lần chạy",
			Timestamp: time.Now(),
		})
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "Gửi email hoàn tất",
		Data:      outcomes,
		Timestamp: time.Now(),
	})
}

// sendProgress đẩy sự kiện vào kênh, đầy thì bỏ qua
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
