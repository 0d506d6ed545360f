package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/models"
)

// getAnalysis computes the window's totals and raw list, then asks the model
// for a short narrative over them. The narrative comes back verbatim.
func (b *Bot) getAnalysis(ctx context.Context, intent *llm.Intent) (string, error) {
	from, to := periodWindow(intent.Period, b.now().In(b.loc))
	transactions, err := b.store.ListTransactions(ctx, "", from, to)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return replyNoTransactions, nil
	}

	var income, expense int64
	var sb strings.Builder
	fmt.Fprintf(&sb, "بازه: %s\n", periodLabel(intent.Period))
	for _, tx := range transactions {
		if tx.Kind == models.KindIncome {
			income += tx.Amount
		} else {
			expense += tx.Amount
		}
	}
	fmt.Fprintf(&sb, "جمع درآمد: %s\nجمع هزینه: %s\nتراز: %s\n\nریز تراکنش‌ها:",
		formatAmount(income), formatAmount(expense), formatAmount(income-expense))
	for _, tx := range transactions {
		fmt.Fprintf(&sb, "\n- %s | %s | %s | %s",
			tx.Date, kindLabel(tx.Kind), categoryLabel(tx.Category), formatAmount(tx.Amount))
	}

	narrative, err := b.brain.Advise(ctx, sb.String())
	if err != nil {
		return "", err
	}
	if narrative == "" {
		return replyUnrecognized, nil
	}
	return narrative, nil
}
