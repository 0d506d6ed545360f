package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mahdizzzz/finance-app/llm"
)

// Transactions older than this never enter the Q&A context block.
const contextWindowDays = 30

func (b *Bot) askQuestion(ctx context.Context, intent *llm.Intent) (string, error) {
	block, err := b.assembleContext(ctx)
	if err != nil {
		return "", err
	}

	answer, err := b.brain.Answer(ctx, block, intent.Question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return replyUnrecognized, nil
	}
	return answer, nil
}

// assembleContext gathers the records the analyst call sees, in a fixed
// order: recent transactions, then accounts, then installments. A section
// with no records gets an explicit placeholder line so the model never sees
// a silently empty block.
func (b *Bot) assembleContext(ctx context.Context) (string, error) {
	now := b.now().In(b.loc)
	from := now.AddDate(0, 0, -contextWindowDays)

	transactions, err := b.store.ListTransactions(ctx, "", from, time.Time{})
	if err != nil {
		return "", err
	}
	accounts, err := b.store.ListAccounts(ctx)
	if err != nil {
		return "", err
	}
	installments, err := b.store.ListInstallments(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("تراکنش‌های سی روز اخیر:")
	if len(transactions) == 0 {
		sb.WriteString("\n" + noDataPlaceholder)
	}
	for _, tx := range transactions {
		fmt.Fprintf(&sb, "\n- %s %s | %s | %s | %s | %s",
			tx.Date, tx.Time, kindLabel(tx.Kind), categoryLabel(tx.Category),
			formatAmount(tx.Amount), tx.Description)
	}

	sb.WriteString("\n\nموجودی حساب‌ها:")
	if len(accounts) == 0 {
		sb.WriteString("\n" + noDataPlaceholder)
	}
	for _, account := range accounts {
		fmt.Fprintf(&sb, "\n- %s: %s", account.Name, formatAmount(account.Balance))
	}

	sb.WriteString("\n\nاقساط ماهانه:")
	if len(installments) == 0 {
		sb.WriteString("\n" + noDataPlaceholder)
	}
	for _, installment := range installments {
		fmt.Fprintf(&sb, "\n- %s: %s، روز %d هر ماه",
			installment.Name, formatAmount(installment.Amount), installment.DayOfMonth)
	}

	return sb.String(), nil
}
