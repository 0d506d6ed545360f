package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tgbotapi "gopkg.in/telegram-bot-api.v4"

	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/logger"
	"github.com/mahdizzzz/finance-app/metrics"
	"github.com/mahdizzzz/finance-app/models"
)

// Store is the slice of the document store the message handlers need.
type Store interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, kind string, from, to time.Time) ([]models.Transaction, error)
	UpsertAccount(ctx context.Context, name string, balance int64) error
	GetAccount(ctx context.Context, name string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListInstallments(ctx context.Context) ([]models.Installment, error)
	InsertReminder(ctx context.Context, r *models.Reminder) error
}

// Brain is the generative backend: intent resolution plus the two free-text
// calls. Resolve's error means the call itself failed; an uninterpretable
// answer is an ActionUnknown intent, not an error.
type Brain interface {
	Resolve(ctx context.Context, message string) (*llm.Intent, error)
	Answer(ctx context.Context, contextBlock, question string) (string, error)
	Advise(ctx context.Context, summary string) (string, error)
}

// Sender delivers outbound Telegram messages. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot handles one inbound update at a time: guard, intent resolution,
// dispatch, reply. It keeps no state between updates.
type Bot struct {
	operatorID int64
	store      Store
	brain      Brain
	sender     Sender
	loc        *time.Location
	now        func() time.Time
}

func New(operatorID int64, store Store, brain Brain, sender Sender, loc *time.Location) *Bot {
	return &Bot{
		operatorID: operatorID,
		store:      store,
		brain:      brain,
		sender:     sender,
		loc:        loc,
		now:        time.Now,
	}
}

// HandleUpdate processes a single webhook delivery. Processing failures are
// answered to the chat, not returned; the error is non-nil only when no
// reply could be delivered to Telegram at all.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}
	chatID := msg.Chat.ID

	if int64(msg.From.ID) != b.operatorID {
		logger.Get().Warn("rejected message from unknown sender",
			zap.Int("sender_id", msg.From.ID),
			zap.Int64("chat_id", chatID))
		return b.reply(chatID, replyNotAuthorized)
	}

	metrics.UpdatesReceived.Inc()

	intent, err := b.brain.Resolve(ctx, msg.Text)
	if err != nil {
		metrics.TransportFailures.Inc()
		logger.Get().Error("intent resolution failed", zap.Error(err))
		return b.reply(chatID, replySystemError)
	}
	metrics.IntentsResolved.WithLabelValues(intent.Action).Inc()

	text, err := b.execute(ctx, intent)
	if err != nil {
		logger.Get().Error("handler failed",
			zap.String("action", intent.Action),
			zap.Error(err))
		return b.reply(chatID, replySystemError)
	}
	return b.reply(chatID, text)
}

// execute routes a resolved intent to its handler. Every branch returns the
// final reply text; an error here becomes the system-failure reply.
func (b *Bot) execute(ctx context.Context, intent *llm.Intent) (string, error) {
	switch intent.Action {
	case llm.ActionAddTransaction:
		return b.addTransaction(ctx, intent)
	case llm.ActionUpdateBalance:
		return b.updateBalance(ctx, intent)
	case llm.ActionGetBalance:
		return b.getBalance(ctx, intent)
	case llm.ActionGetReport:
		return b.getReport(ctx, intent)
	case llm.ActionGetTransactionList:
		return b.getTransactionList(ctx, intent)
	case llm.ActionGetAnalysis:
		return b.getAnalysis(ctx, intent)
	case llm.ActionSetReminder:
		return b.setReminder(ctx, intent)
	case llm.ActionAskQuestion:
		return b.askQuestion(ctx, intent)
	default:
		return replyUnrecognized, nil
	}
}

func (b *Bot) reply(chatID int64, text string) error {
	if b.sender == nil {
		return fmt.Errorf("telegram sender not initialized")
	}
	if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}
