package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TagiaHuy/SendEmail/internal/checker"
)

// Send gửi email thông báo theo kết quả kiểm tra, đẩy tiến độ qua SSE
// POST /api/send (body: CheckReport trả về từ /api/check)
func (h *Handler) Send(c *gin.Context) {
	var report checker.CheckReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nội dung gửi không hợp lệ"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming không được hỗ trợ"})
		return
	}

	progressChan := h.coordinator.Send(&report)
	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
