package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	tgbotapi "gopkg.in/telegram-bot-api.v4"

	"github.com/mahdizzzz/finance-app/logger"
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type reportRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// ForwardReport accepts a pre-rendered document body, relays it to the
// operator's chat as a file attachment, and removes the transient copy
// whether or not the relay succeeded.
func ForwardReport(sender Sender, chatID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "filename and content are required"})
			return
		}

		// The route stays registered even when Telegram auth failed at
		// boot; the request fails here, at first use.
		if sender == nil {
			logger.Get().Error("report requested but telegram sender is not initialized")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "telegram sender unavailable"})
			return
		}

		dir, err := os.MkdirTemp("", "report")
		if err != nil {
			logger.Get().Error("failed to create temp dir", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage report"})
			return
		}
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, filepath.Base(req.Filename))
		if err := os.WriteFile(path, []byte(req.Content), 0o600); err != nil {
			logger.Get().Error("failed to write report file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage report"})
			return
		}

		if _, err := sender.Send(tgbotapi.NewDocumentUpload(chatID, path)); err != nil {
			logger.Get().Error("failed to forward report",
				zap.String("filename", req.Filename),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "report relay failed"})
			return
		}

		logger.Get().Info("report forwarded", zap.String("filename", req.Filename))
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	}
}
