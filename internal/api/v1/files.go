package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TagiaHuy/SendEmail/internal/config"
)

// UploadFile nhận file đầu vào và ghi đè vào đường dẫn đã cấu hình
// POST /api/files/:kind (kind: attendance | leave | emails | template)
func (h *Handler) UploadFile(c *gin.Context) {
	kind := c.Param("kind")

	var target string
	switch kind {
	case "attendance":
		target = h.cfg.Files.Attendance
	case "leave":
		target = h.cfg.Files.Leave
	case "emails":
		target = h.cfg.Files.Emails
	case "template":
		target = h.cfg.Files.Template
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "loại file không hợp lệ: " + kind})
		return
	}

	uploaded, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thiếu file tải lên"})
		return
	}

	dest := config.ResolvePath(target)
	if err := c.SaveUploadedFile(uploaded, dest); err != nil {
		h.log.Error().Err(err).Str("kind", kind).Msg("ghi file tải lên thất bại")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ghi file thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind": kind,
		"path": dest,
		"size": uploaded.Size,
	})
}
