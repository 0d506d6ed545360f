package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahdizzzz/finance-app/llm"
)

func (b *Bot) updateBalance(ctx context.Context, intent *llm.Intent) (string, error) {
	name := strings.TrimSpace(intent.Name)
	if err := b.store.UpsertAccount(ctx, name, intent.Balance); err != nil {
		return "", err
	}
	return fmt.Sprintf("💳 موجودی حساب «%s» ثبت شد: %s", name, formatAmount(intent.Balance)), nil
}

func (b *Bot) getBalance(ctx context.Context, intent *llm.Intent) (string, error) {
	name := strings.TrimSpace(intent.Name)

	if name == llm.BalanceAll {
		accounts, err := b.store.ListAccounts(ctx)
		if err != nil {
			return "", err
		}
		if len(accounts) == 0 {
			return replyNoAccounts, nil
		}

		var sb strings.Builder
		sb.WriteString("💰 موجودی حساب‌ها:")
		var total int64
		for _, account := range accounts {
			fmt.Fprintf(&sb, "\n• %s: %s", account.Name, formatAmount(account.Balance))
			total += account.Balance
		}
		fmt.Fprintf(&sb, "\n— جمع کل: %s", formatAmount(total))
		return sb.String(), nil
	}

	account, err := b.store.GetAccount(ctx, name)
	if err != nil {
		return "", err
	}
	if account == nil {
		return fmt.Sprintf("حسابی به نام «%s» ثبت نشده است.", name), nil
	}
	return fmt.Sprintf("💳 موجودی «%s»: %s", account.Name, formatAmount(account.Balance)), nil
}
