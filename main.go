package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	tgbotapi "gopkg.in/telegram-bot-api.v4"

	"github.com/mahdizzzz/finance-app/bot"
	"github.com/mahdizzzz/finance-app/config"
	"github.com/mahdizzzz/finance-app/handlers"
	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/logger"
	"github.com/mahdizzzz/finance-app/mongodb"
	"github.com/mahdizzzz/finance-app/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal; production sets real environment variables.
		os.Stderr.WriteString("warning: .env file not found\n")
	}
	if err := logger.Init(os.Getenv("APP_ENV") != "production", os.Getenv("LOG_LEVEL")); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Get().Warn("invalid timezone, falling back to UTC",
			zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	// Missing credentials are reported but do not stop the process; the
	// affected requests fail at first use instead.
	store, err := mongodb.Connect(cfg.MongoURI, cfg.MongoDatabase, cfg.UserID)
	if err != nil {
		logger.Get().Error("document store unavailable", zap.Error(err))
	} else {
		defer store.Close()
	}

	var api *tgbotapi.BotAPI
	if cfg.TelegramToken == "" {
		logger.Get().Error("TELEGRAM_BOT_TOKEN not set, replies will fail")
	} else {
		api, err = tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			logger.Get().Error("telegram authorization failed", zap.Error(err))
		} else {
			logger.Get().Info("authorized on telegram", zap.String("username", api.Self.UserName))
		}
	}

	if cfg.GeminiAPIKey == "" {
		logger.Get().Error("GEMINI_API_KEY not set, intent resolution will fail")
	}
	brain := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	b := bot.New(cfg.OperatorID, store, brain, senderOrNil(api), loc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if api != nil {
		sweeper := worker.NewSweeper(store, api, cfg.OperatorID, loc, cfg.SweepInterval)
		go sweeper.Run(ctx)
	}

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/webhook", handlers.Webhook(b))
	router.POST("/report", handlers.ForwardReport(senderOrNil(api), cfg.OperatorID))
	router.GET("/healthz", handlers.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Get().Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}

// senderOrNil keeps the bot's Sender interface nil when telegram auth failed
// at boot, so replies fail with a logged error instead of a nil dereference.
func senderOrNil(api *tgbotapi.BotAPI) bot.Sender {
	if api == nil {
		return nil
	}
	return api
}
