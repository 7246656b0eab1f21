package v1

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/TagiaHuy/SendEmail/internal/config"
)

// GetStatus trạng thái hệ thống: file đầu vào nào đã sẵn sàng, SMTP đã cấu hình chưa
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	files := gin.H{
		"attendance": fileExists(h.cfg.Files.Attendance),
		"leave":      fileExists(h.cfg.Files.Leave),
		"emails":     fileExists(h.cfg.Files.Emails),
		"template":   fileExists(h.cfg.Files.Template),
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"files":           files,
		"smtp_configured": h.cfg.SMTP.Address != "" && h.cfg.SMTP.Password != "",
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(config.ResolvePath(path))
	return err == nil && !info.IsDir()
}
