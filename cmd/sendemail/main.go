package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TagiaHuy/SendEmail/internal/config"
	"github.com/TagiaHuy/SendEmail/internal/server"
	"github.com/TagiaHuy/SendEmail/internal/util"
)

var (
	port    = flag.Int("port", 0, "cổng dịch vụ (config.toml được ưu tiên)")
	devMode = flag.Bool("dev", false, "chế độ phát triển")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  SendEmail - Công cụ gửi thông báo điểm danh CLB")
	fmt.Println("==========================================")

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// Nạp cấu hình
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Nạp cấu hình thất bại, dùng cấu hình mặc định: %v", err)
		cfg = config.DefaultConfig()
	}

	// Tham số dòng lệnh ghi đè cấu hình
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	if cfg.SMTP.Address == "" || cfg.SMTP.Password == "" {
		fmt.Println("Chưa cấu hình EMAIL_ADDRESS / EMAIL_PASSWORD — chỉ kiểm tra được, không gửi được email.")
	}

	// Tạo server
	srv := server.NewServer(cfg, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// Khởi động server
	go func() {
		fmt.Printf("Dịch vụ đang khởi động, lắng nghe cổng %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("Khởi động dịch vụ thất bại: %v", err)
		}
	}()

	// Mở trình duyệt
	if !cfg.Server.DevMode {
		fmt.Printf("Đang mở trình duyệt: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Không tự mở được trình duyệt, hãy truy cập: %s\n", url)
		}
	} else {
		fmt.Printf("Chế độ phát triển: hãy truy cập %s\n", url)
	}

	fmt.Println("\nNhấn Ctrl+C để dừng dịch vụ...")

	// Chờ tín hiệu
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nĐang dừng dịch vụ...")
}
