package v1

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TagiaHuy/SendEmail/internal/checker"
	"github.com/TagiaHuy/SendEmail/internal/notice"
	"github.com/TagiaHuy/SendEmail/internal/parser"
)

// Check chạy kiểm tra điểm danh cho một ngày
// POST /api/check (multipart: file tùy chọn, day, cutoff)
func (h *Handler) Check(c *gin.Context) {
	opts := checker.CheckOptions{}

	if v := c.PostForm("day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("ngày không hợp lệ: %q", v)})
			return
		}
		opts.Day = day
	}
	opts.Cutoff = c.PostForm("cutoff")

	// File tải lên dùng thay cho file điểm danh mặc định
	if uploaded, err := c.FormFile("file"); err == nil {
		tempPath := filepath.Join(os.TempDir(),
			fmt.Sprintf("sendemail_check_%d_%s", time.Now().Unix(), filepath.Base(uploaded.Filename)))
		if err := c.SaveUploadedFile(uploaded, tempPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lưu file tải lên thất bại"})
			return
		}
		defer os.Remove(tempPath)
		opts.AttendancePath = tempPath
	}

	report, err := h.coordinator.Check(opts)
	if err != nil {
		c.JSON(statusForCheckError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// statusForCheckError mỗi loại lỗi một mã trạng thái, không gộp chung
// để phía hiển thị nêu được đúng nguyên nhân
func statusForCheckError(err error) int {
	switch {
	case errors.Is(err, parser.ErrWorkbookNotFound):
		return http.StatusNotFound
	case errors.Is(err, parser.ErrWorkbookInvalid):
		return http.StatusBadRequest
	case errors.Is(err, parser.ErrHeaderRowMissing),
		errors.Is(err, parser.ErrDayColumnNotFound),
		errors.Is(err, parser.ErrTimeColumnNotFound),
		errors.Is(err, notice.ErrTemplateUnreadable),
		errors.Is(err, notice.ErrDirectoryUnreadable),
		errors.Is(err, notice.ErrDirectoryMissingColumns):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
