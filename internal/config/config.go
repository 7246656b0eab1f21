package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/TagiaHuy/SendEmail/internal/model"
)

// AppConfig cấu hình ứng dụng
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Files    FilesConfig    `toml:"files"`
	Layout   model.Layout   `toml:"layout"`
	Business BusinessConfig `toml:"business"`
	SMTP     SMTPConfig     `toml:"smtp"`
}

// ServerConfig cấu hình máy chủ
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// FilesConfig đường dẫn mặc định của các file đầu vào / file log
type FilesConfig struct {
	Attendance string `toml:"attendance"`
	Leave      string `toml:"leave"`
	Emails     string `toml:"emails"`
	Template   string `toml:"template"`
	Log        string `toml:"log"`
}

// BusinessConfig nội quy của CLB: giờ chuẩn, nhãn vi phạm, mức phạt
type BusinessConfig struct {
	DefaultCutoff string `toml:"default_cutoff"` // "HH:MM"
	LateReason    string `toml:"late_reason"`
	LateFine      string `toml:"late_fine"`
	AbsentReason  string `toml:"absent_reason"`
	AbsentFine    string `toml:"absent_fine"`
	Count         string `toml:"count"`
	DaysToHandle  int    `toml:"days_to_handle"`
	Subject       string `toml:"subject"`
	MergePolicy   string `toml:"merge_policy"`
}

// SMTPConfig cấu hình gửi email; tài khoản/mật khẩu chỉ nhận qua biến
// môi trường (file .env), không bao giờ nằm trong config.toml
type SMTPConfig struct {
	Server   string `toml:"server"`
	Port     int    `toml:"port"`
	Address  string `toml:"-"` // EMAIL_ADDRESS
	Password string `toml:"-"` // EMAIL_PASSWORD
}

// DefaultConfig cấu hình mặc định theo nội quy hiện hành của CLB
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20288,
			DevMode: false,
		},
		Files: FilesConfig{
			Attendance: "attendance.xlsx",
			Leave:      "leave_requests.txt",
			Emails:     "emails.csv",
			Template:   "Mau_Email.txt",
			Log:        "email_logs.txt",
		},
		Layout: model.DefaultLayout(),
		Business: BusinessConfig{
			DefaultCutoff: "18:00",
			LateReason:    "Đi muộn",
			LateFine:      "5,000",
			AbsentReason:  "Vắng không phép",
			AbsentFine:    "20,000",
			Count:         "1",
			DaysToHandle:  7,
			Subject:       "Thông báo vi phạm nội quy CLB Tiếng Anh",
			MergePolicy:   "last-write-wins",
		},
		SMTP: SMTPConfig{
			Server: "smtp.gmail.com",
			Port:   587,
		},
	}
}

// GetExeDir lấy thư mục chứa file thực thi
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig đọc config.toml cạnh file thực thi rồi phủ biến môi trường.
// Không có file cấu hình thì dùng mặc định.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// Không xác định được thư mục thực thi, dùng thư mục hiện tại
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	config.applyEnv()

	return config, nil
}

// applyEnv nạp .env (nếu có) rồi phủ các biến môi trường SMTP lên cấu hình
func (c *AppConfig) applyEnv() {
	// .env chỉ là tiện ích cho vận hành tại chỗ; thiếu file không phải lỗi
	_ = godotenv.Load()

	if v := os.Getenv("EMAIL_ADDRESS"); v != "" {
		c.SMTP.Address = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		c.SMTP.Server = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = port
		}
	}
}

// SaveConfig ghi cấu hình ra config.toml cạnh file thực thi
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ResolvePath đổi đường dẫn file dữ liệu tương đối thành tuyệt đối
// so với thư mục chứa file thực thi
func ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	exeDir, err := GetExeDir()
	if err != nil {
		return path
	}
	return filepath.Join(exeDir, path)
}
