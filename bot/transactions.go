package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/models"
)

func (b *Bot) addTransaction(ctx context.Context, intent *llm.Intent) (string, error) {
	now := b.now().In(b.loc)
	category := normalizeCategory(intent.Type, intent.Category)

	tx := &models.Transaction{
		Kind:        intent.Type,
		Amount:      intent.Amount,
		Description: strings.TrimSpace(intent.Description),
		Category:    category,
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04"),
		CreatedAt:   now.UTC(),
	}
	if err := b.store.InsertTransaction(ctx, tx); err != nil {
		return "", err
	}

	description := tx.Description
	if description == "" {
		description = "بدون شرح"
	}
	return fmt.Sprintf("✅ %s ثبت شد: %s\n📝 %s\n🏷 دسته: %s\n📅 %s ساعت %s",
		kindLabel(tx.Kind), formatAmount(tx.Amount), description,
		categoryLabel(tx.Category), tx.Date, tx.Time), nil
}

func (b *Bot) getReport(ctx context.Context, intent *llm.Intent) (string, error) {
	from, to := periodWindow(intent.Period, b.now().In(b.loc))

	kind := intent.Type
	if kind == "all" {
		kind = ""
	}
	transactions, err := b.store.ListTransactions(ctx, kind, from, to)
	if err != nil {
		return "", err
	}

	if intent.Type == "all" {
		var income, expense int64
		for _, tx := range transactions {
			if tx.Kind == models.KindIncome {
				income += tx.Amount
			} else {
				expense += tx.Amount
			}
		}
		return fmt.Sprintf("📊 تراز %s: %s (درآمد %s، هزینه %s)",
			periodLabel(intent.Period), formatAmount(income-expense),
			formatAmount(income), formatAmount(expense)), nil
	}

	var total int64
	for _, tx := range transactions {
		total += tx.Amount
	}
	return fmt.Sprintf("📊 جمع %s %s: %s",
		kindLabel(intent.Type), periodLabel(intent.Period), formatAmount(total)), nil
}

func (b *Bot) getTransactionList(ctx context.Context, intent *llm.Intent) (string, error) {
	from, to := periodWindow(intent.Period, b.now().In(b.loc))

	kind := intent.Type
	if kind == "all" {
		kind = ""
	}
	transactions, err := b.store.ListTransactions(ctx, kind, from, to)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return replyNoTransactions, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📒 تراکنش‌های %s:", periodLabel(intent.Period))
	for _, tx := range transactions {
		sign := "-"
		if tx.Kind == models.KindIncome {
			sign = "+"
		}
		description := tx.Description
		if description == "" {
			description = "بدون شرح"
		}
		fmt.Fprintf(&sb, "\n• %s (%s): %s%s",
			description, categoryLabel(tx.Category), sign, formatAmount(tx.Amount))
	}
	return sb.String(), nil
}
