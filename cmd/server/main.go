package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"

	"time-warp/internal/handler"
	"time-warp/internal/notify"
	"time-warp/internal/repository"
	"time-warp/internal/service"
)

// Config holds the application configuration
type Config struct {
	TelegramBotToken string
	TelegramChatID   int64
	DBPath           string
	BackupDir        string
	HTTPAddr         string
}

func main() {
	// Parse CLI flags
	backupMode := flag.Bool("backup", false, "Back up the warp registry and exit")
	flag.Parse()

	// Load configuration
	config := loadConfig()

	// Initialize database
	db, err := repository.NewSQLiteDB(config.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Initialize repositories and services
	warpRepo := repository.NewWarpRepository(db)
	warpSvc := service.NewWarpService(warpRepo)
	travelSvc := service.NewTravelService(warpSvc)
	runner := service.NewCommandRunner(travelSvc, warpSvc)
	backupSvc := service.NewBackupService(config.DBPath, config.BackupDir)

	// CLI mode: back up the registry and exit
	if *backupMode {
		backupPath, err := backupSvc.Backup()
		if err != nil {
			log.Fatalf("Failed to create backup: %v", err)
		}
		fmt.Printf("Backup created: %s\n", backupPath)
		return
	}

	// Initialize Telegram bot if configured
	var bot *notify.TravelBot
	if config.TelegramBotToken != "" {
		bot, err = notify.NewTravelBot(config.TelegramBotToken, config.TelegramChatID, runner)
		if err != nil {
			log.Fatalf("Failed to create Telegram bot: %v", err)
		}
		go bot.Start()
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, running HTTP API only")
	}

	// Initialize scheduler
	scheduler := service.NewScheduler(backupSvc)
	scheduler.Start()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down...")
		scheduler.Stop()
		if bot != nil {
			bot.Stop()
		}
		os.Exit(0)
	}()

	// Start HTTP API (blocking)
	router := gin.Default()
	handler.NewHandler(runner, warpSvc, travelSvc).RegisterRoutes(router)

	log.Printf("time-warp listening on %s", config.HTTPAddr)
	if err := router.Run(config.HTTPAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	return &Config{
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   chatID,
		DBPath:           getEnv("DB_PATH", "time_warp.db"),
		BackupDir:        getEnv("BACKUP_DIR", "backups"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
