package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/TagiaHuy/SendEmail/internal/checker"
	"github.com/TagiaHuy/SendEmail/internal/config"
	"github.com/TagiaHuy/SendEmail/internal/mailer"
	"github.com/TagiaHuy/SendEmail/internal/recorder"
)

// Handler bộ xử lý API
type Handler struct {
	cfg         *config.AppConfig
	coordinator *checker.Coordinator
	rec         *recorder.Recorder
	log         zerolog.Logger
}

// NewHandler nối dây coordinator, transport và recorder từ cấu hình
func NewHandler(cfg *config.AppConfig, log zerolog.Logger) *Handler {
	rec := recorder.New(config.ResolvePath(cfg.Files.Log))
	transport := mailer.New(cfg.SMTP, cfg.Business.Subject, log)

	return &Handler{
		cfg:         cfg,
		coordinator: checker.NewCoordinator(cfg, transport, rec, log),
		rec:         rec,
		log:         log,
	}
}

// RegisterRoutes đăng ký các route API
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Trạng thái hệ thống
	router.GET("/status", h.GetStatus)

	// Kiểm tra điểm danh
	router.POST("/check", h.Check)

	// Gửi email (SSE tiến độ)
	router.POST("/send", h.Send)

	// Tải lên file đầu vào
	router.POST("/files/:kind", h.UploadFile)

	// Lịch sử gửi email
	router.GET("/logs", h.ListLogs)

	// Cấu hình
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)
}
