// Package mailer gửi email thông báo vi phạm qua một phiên SMTP duy nhất.
//
// Gửi tuần tự từng người nhận, không thử lại: một địa chỉ lỗi không chặn
// các địa chỉ còn lại, kết quả từng người được trả về cho bên gọi tự xử lý.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sort"

	"github.com/rs/zerolog"

	"github.com/TagiaHuy/SendEmail/internal/config"
	"github.com/TagiaHuy/SendEmail/internal/model"
)

// Transport bên gửi email: nhận batch địa chỉ -> nội dung, trả về
// địa chỉ -> trạng thái ("Thành công" hoặc mô tả lỗi)
type Transport interface {
	SendBatch(batch map[string]string, onResult func(email, status string)) map[string]string
}

// Mailer Transport chạy trên net/smtp
type Mailer struct {
	cfg     config.SMTPConfig
	subject string
	log     zerolog.Logger
}

// New tạo mailer với cấu hình SMTP và tiêu đề email cố định
func New(cfg config.SMTPConfig, subject string, log zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, subject: subject, log: log}
}

// SendBatch gửi toàn bộ batch trong một phiên SMTP: kết nối, STARTTLS,
// đăng nhập, rồi gửi lần lượt theo thứ tự địa chỉ. onResult (có thể nil)
// được gọi ngay sau mỗi người nhận để bên gọi stream tiến độ.
func (m *Mailer) SendBatch(batch map[string]string, onResult func(email, status string)) map[string]string {
	outcomes := make(map[string]string, len(batch))
	if len(batch) == 0 {
		return outcomes
	}

	emails := make([]string, 0, len(batch))
	for email := range batch {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	report := func(email, status string) {
		outcomes[email] = status
		if onResult != nil {
			onResult(email, status)
		}
	}
	failAll := func(status string) map[string]string {
		for _, email := range emails {
			report(email, status)
		}
		return outcomes
	}

	if m.cfg.Address == "" || m.cfg.Password == "" {
		m.log.Error().Msg("thiếu EMAIL_ADDRESS hoặc EMAIL_PASSWORD, không thể gửi email")
		return failAll("Lỗi: Thiếu cấu hình email gửi")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		m.log.Error().Str("smtp", addr).Err(err).Msg("kết nối SMTP thất bại")
		return failAll(fmt.Sprintf("Lỗi: Kết nối SMTP thất bại: %v", err))
	}
	defer client.Quit()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Server}); err != nil {
			return failAll(fmt.Sprintf("Lỗi: STARTTLS thất bại: %v", err))
		}
	}

	auth := smtp.PlainAuth("", m.cfg.Address, m.cfg.Password, m.cfg.Server)
	if err := client.Auth(auth); err != nil {
		m.log.Error().Err(err).Msg("xác thực SMTP thất bại")
		return failAll("Lỗi: Xác thực SMTP thất bại")
	}

	for _, email := range emails {
		if err := m.sendOne(client, email, batch[email]); err != nil {
			m.log.Warn().Str("email", email).Err(err).Msg("gửi email thất bại")
			report(email, fmt.Sprintf("Lỗi: %v", err))
			// Dọn phiên để người nhận kế tiếp không dính trạng thái dở dang
			_ = client.Reset()
			continue
		}
		report(email, model.SendStatusOK)
	}

	return outcomes
}

// sendOne gửi một email trong phiên đang mở
func (m *Mailer) sendOne(client *smtp.Client, to, body string) error {
	if err := client.Mail(m.cfg.Address); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMessage(m.cfg.Address, to, m.subject, body)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// buildMessage dựng message text/plain UTF-8 với header tối thiểu
func buildMessage(from, to, subject, body string) []byte {
	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	headers += "\r\n"
	return []byte(headers + body)
}
