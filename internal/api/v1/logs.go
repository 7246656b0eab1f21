package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListLogs trả về lịch sử các lần gửi email, mới nhất xếp sau
// GET /api/logs
func (h *Handler) ListLogs(c *gin.Context) {
	entries, err := h.rec.History()
	if err != nil {
		h.log.Error().Err(err).Msg("đọc file log thất bại")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "đọc lịch sử thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}
