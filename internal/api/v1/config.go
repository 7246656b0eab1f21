package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TagiaHuy/SendEmail/internal/config"
	"github.com/TagiaHuy/SendEmail/internal/model"
)

// GetConfig trả về cấu hình hiện tại, không kèm thông tin đăng nhập SMTP
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"server":   h.cfg.Server,
		"files":    h.cfg.Files,
		"layout":   h.cfg.Layout,
		"business": h.cfg.Business,
		"smtp": gin.H{
			"server":     h.cfg.SMTP.Server,
			"port":       h.cfg.SMTP.Port,
			"configured": h.cfg.SMTP.Address != "" && h.cfg.SMTP.Password != "",
		},
	})
}

// updateConfigRequest các phần cấu hình cho phép sửa qua API.
// Thông tin đăng nhập SMTP chỉ nhận qua biến môi trường.
type updateConfigRequest struct {
	Files    *config.FilesConfig    `json:"files"`
	Layout   *model.Layout          `json:"layout"`
	Business *config.BusinessConfig `json:"business"`
}

// UpdateConfig cập nhật cấu hình và ghi lại config.toml
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nội dung cấu hình không hợp lệ"})
		return
	}

	updated := *h.cfg
	if req.Files != nil {
		updated.Files = *req.Files
	}
	if req.Layout != nil {
		updated.Layout = *req.Layout
	}
	if req.Business != nil {
		updated.Business = *req.Business
	}

	if err := updated.Layout.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := config.SaveConfig(&updated); err != nil {
		h.log.Error().Err(err).Msg("ghi config.toml thất bại")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lưu cấu hình thất bại"})
		return
	}

	*h.cfg = updated
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
