package model

import "time"

// SendStatusOK trạng thái gửi thành công, các giá trị khác là mô tả lỗi
const SendStatusOK = "Thành công"

// RunEntry một lần chạy kiểm tra đã ghi vào file log
type RunEntry struct {
	RunID    string            `json:"runId"`
	LoggedAt time.Time         `json:"loggedAt"`
	Day      int               `json:"day"`
	Cutoff   string            `json:"cutoff"`
	Late     []string          `json:"late"`
	Absent   []string          `json:"absent"` // danh sách vắng sau khi lọc nghỉ phép
	Outcomes map[string]string `json:"outcomes"`
}
