package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/models"
)

func (b *Bot) setReminder(ctx context.Context, intent *llm.Intent) (string, error) {
	hour, minute, err := parseClock(intent.Time)
	if err != nil {
		// The parser only lets valid HH:MM through; treat anything else as
		// a message we did not understand rather than a system fault.
		return replyUnrecognized, nil
	}

	now := b.now().In(b.loc)
	runAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, b.loc)
	day := "امروز"
	if !runAt.After(now) {
		runAt = runAt.AddDate(0, 0, 1)
		day = "فردا"
	}

	reminder := &models.Reminder{
		Message:   strings.TrimSpace(intent.Message),
		RunAt:     runAt,
		Sent:      false,
		CreatedAt: now.UTC(),
	}
	if err := b.store.InsertReminder(ctx, reminder); err != nil {
		return "", err
	}
	return fmt.Sprintf("⏰ یادآور برای %s ساعت %02d:%02d ثبت شد:\n«%s»",
		day, hour, minute, reminder.Message), nil
}

func parseClock(value string) (hour, minute int, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", value)
	}
	return hour, minute, nil
}
