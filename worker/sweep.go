package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tgbotapi "gopkg.in/telegram-bot-api.v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mahdizzzz/finance-app/logger"
	"github.com/mahdizzzz/finance-app/metrics"
	"github.com/mahdizzzz/finance-app/models"
)

// Store is the slice of the document store the sweep needs.
type Store interface {
	DueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
	ListInstallments(ctx context.Context) ([]models.Installment, error)
	ListBudgets(ctx context.Context) ([]models.Budget, error)
	ListTransactions(ctx context.Context, kind string, from, to time.Time) ([]models.Transaction, error)
}

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sweeper is the periodic notify loop: due reminders every tick, installment
// notices and budget-cap alerts once per local day. Reminders are deleted
// only after a successful send, so a failed delivery is retried next tick;
// a send that succeeds but whose delete fails may notify twice, which the
// reminder contract accepts.
type Sweeper struct {
	store    Store
	sender   Sender
	chatID   int64
	loc      *time.Location
	interval time.Duration
	now      func() time.Time

	lastDaily string // local YYYY-MM-DD of the last daily pass
}

func NewSweeper(store Store, sender Sender, chatID int64, loc *time.Location, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		sender:   sender,
		chatID:   chatID,
		loc:      loc,
		interval: interval,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	logger.Get().Info("sweep job started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx, s.now())
		case <-ctx.Done():
			logger.Get().Info("sweep job stopped")
			return
		}
	}
}

func (s *Sweeper) tick(ctx context.Context, now time.Time) {
	s.sweepReminders(ctx, now)

	today := now.In(s.loc).Format("2006-01-02")
	if today != s.lastDaily {
		s.lastDaily = today
		s.sweepInstallments(ctx, now)
		s.sweepBudgets(ctx, now)
	}
}

func (s *Sweeper) sweepReminders(ctx context.Context, now time.Time) {
	due, err := s.store.DueReminders(ctx, now)
	if err != nil {
		logger.Get().Error("failed to fetch due reminders", zap.Error(err))
		return
	}

	for _, reminder := range due {
		text := fmt.Sprintf("🔔 یادآوری:\n%s", reminder.Message)
		if _, err := s.sender.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
			logger.Get().Error("failed to deliver reminder",
				zap.String("reminder_id", reminder.ID),
				zap.Error(err))
			continue
		}
		metrics.RemindersDelivered.Inc()
		if err := s.store.DeleteReminder(ctx, reminder.ID); err != nil {
			logger.Get().Error("failed to delete delivered reminder",
				zap.String("reminder_id", reminder.ID),
				zap.Error(err))
		}
	}
}

func (s *Sweeper) sweepInstallments(ctx context.Context, now time.Time) {
	installments, err := s.store.ListInstallments(ctx)
	if err != nil {
		logger.Get().Error("failed to fetch installments", zap.Error(err))
		return
	}

	day := now.In(s.loc).Day()
	for _, installment := range installments {
		if installment.DayOfMonth != day {
			continue
		}
		text := fmt.Sprintf("📆 امروز موعد قسط «%s» است: %s تومان",
			installment.Name, groupDigits(installment.Amount))
		if _, err := s.sender.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
			logger.Get().Error("failed to deliver installment notice",
				zap.String("installment", installment.Name),
				zap.Error(err))
		}
	}
}

func (s *Sweeper) sweepBudgets(ctx context.Context, now time.Time) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		logger.Get().Error("failed to fetch budgets", zap.Error(err))
		return
	}
	if len(budgets) == 0 {
		return
	}

	local := now.In(s.loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.loc)
	expenses, err := s.store.ListTransactions(ctx, models.KindExpense, first, first.AddDate(0, 1, 0))
	if err != nil {
		logger.Get().Error("failed to fetch month expenses", zap.Error(err))
		return
	}

	spent := make(map[string]int64)
	for _, tx := range expenses {
		spent[tx.Category] += tx.Amount
	}

	for _, budget := range budgets {
		if spent[budget.Category] < budget.Cap {
			continue
		}
		text := fmt.Sprintf("🚨 سقف بودجه دسته «%s» رد شد: %s از %s تومان",
			budget.Category, groupDigits(spent[budget.Category]), groupDigits(budget.Cap))
		if _, err := s.sender.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
			logger.Get().Error("failed to deliver budget alert",
				zap.String("category", budget.Category),
				zap.Error(err))
		}
	}
}

var printer = message.NewPrinter(language.English)

func groupDigits(n int64) string {
	return printer.Sprintf("%d", n)
}
