package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	tgbotapi "gopkg.in/telegram-bot-api.v4"

	"github.com/mahdizzzz/finance-app/logger"
)

// UpdateHandler processes one Telegram update end to end. The returned error
// means the reply could not be delivered at all; handled processing failures
// are answered inside the chat and are not errors here.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Webhook receives one Telegram update per POST. A malformed body is the
// caller's fault (400); once dispatched, the response is 200 "ok" even when
// the update produced an error reply in the chat. Only a failure to reach
// Telegram itself yields a 500.
func Webhook(bot UpdateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			logger.Get().Warn("malformed webhook payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
			return
		}

		if err := bot.HandleUpdate(c.Request.Context(), update); err != nil {
			logger.Get().Error("failed to deliver reply", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reply delivery failed"})
			return
		}
		c.String(http.StatusOK, "ok")
	}
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
