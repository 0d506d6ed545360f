package bot

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	tgbotapi "gopkg.in/telegram-bot-api.v4"

	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/models"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	transactions []models.Transaction
	accounts     map[string]*models.Account
	installments []models.Installment
	reminders    []models.Reminder
	mutations    int
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]*models.Account)}
}

func (m *memStore) InsertTransaction(_ context.Context, tx *models.Transaction) error {
	m.mutations++
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *memStore) ListTransactions(_ context.Context, kind string, from, to time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range m.transactions {
		if kind != "" && tx.Kind != kind {
			continue
		}
		if !from.IsZero() && tx.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !tx.CreatedAt.Before(to) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UpsertAccount(_ context.Context, name string, balance int64) error {
	m.mutations++
	if account, ok := m.accounts[name]; ok {
		account.Balance = balance
		account.UpdatedAt = time.Now()
		return nil
	}
	m.accounts[name] = &models.Account{Name: name, Balance: balance, UpdatedAt: time.Now()}
	return nil
}

func (m *memStore) GetAccount(_ context.Context, name string) (*models.Account, error) {
	account, ok := m.accounts[name]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (m *memStore) ListAccounts(_ context.Context) ([]models.Account, error) {
	names := make([]string, 0, len(m.accounts))
	for name := range m.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]models.Account, 0, len(names))
	for _, name := range names {
		out = append(out, *m.accounts[name])
	}
	return out, nil
}

func (m *memStore) ListInstallments(_ context.Context) ([]models.Installment, error) {
	return m.installments, nil
}

func (m *memStore) InsertReminder(_ context.Context, r *models.Reminder) error {
	m.mutations++
	m.reminders = append(m.reminders, *r)
	return nil
}

// fakeBrain returns canned results and records what it was asked.
type fakeBrain struct {
	intent   *llm.Intent
	err      error
	answer   string
	advice   string
	resolved []string
	contexts []string
}

func (f *fakeBrain) Resolve(_ context.Context, message string) (*llm.Intent, error) {
	f.resolved = append(f.resolved, message)
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

func (f *fakeBrain) Answer(_ context.Context, contextBlock, _ string) (string, error) {
	f.contexts = append(f.contexts, contextBlock)
	return f.answer, nil
}

func (f *fakeBrain) Advise(_ context.Context, summary string) (string, error) {
	f.contexts = append(f.contexts, summary)
	return f.advice, nil
}

type fakeSender struct {
	texts []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) last() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

const operatorID = 42

// fixedNow is a Tuesday, 12:00 local.
var fixedNow = time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC)

func newTestBot(store Store, brain Brain) (*Bot, *fakeSender) {
	sender := &fakeSender{}
	b := New(operatorID, store, brain, sender, time.UTC)
	b.now = func() time.Time { return fixedNow }
	return b, sender
}

func update(fromID int, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: fromID},
			Chat: &tgbotapi.Chat{ID: 100},
			Text: text,
		},
	}
}

func TestAccessGuardRejectsStrangers(t *testing.T) {
	store := newMemStore()
	brain := &fakeBrain{intent: &llm.Intent{Action: llm.ActionGetBalance, Name: "all"}}
	b, sender := newTestBot(store, brain)

	if err := b.HandleUpdate(context.Background(), update(7, "چقدر پول دارم؟")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.last() != replyNotAuthorized {
		t.Errorf("reply = %q, want the not-authorized text", sender.last())
	}
	if len(brain.resolved) != 0 {
		t.Error("a rejected message must never reach the intent parser")
	}
	if store.mutations != 0 {
		t.Error("a rejected message must never mutate the store")
	}
}

func TestFailureRepliesAreDistinct(t *testing.T) {
	// Transport failure and parse ambiguity must produce different texts,
	// and neither may look like a success.
	b, sender := newTestBot(newMemStore(), &fakeBrain{err: context.DeadlineExceeded})
	if err := b.HandleUpdate(context.Background(), update(operatorID, "x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	transport := sender.last()

	b2, sender2 := newTestBot(newMemStore(), &fakeBrain{intent: &llm.Intent{Action: llm.ActionUnknown}})
	if err := b2.HandleUpdate(context.Background(), update(operatorID, "x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ambiguity := sender2.last()

	if transport != replySystemError {
		t.Errorf("transport failure reply = %q", transport)
	}
	if ambiguity != replyUnrecognized {
		t.Errorf("ambiguity reply = %q", ambiguity)
	}
	if transport == ambiguity {
		t.Error("transport and ambiguity replies must differ")
	}
	if transport == replyNotAuthorized || ambiguity == replyNotAuthorized {
		t.Error("failure replies must differ from the authorization reply")
	}
}

func TestAddTransactionCategoryFallback(t *testing.T) {
	store := newMemStore()
	b, _ := newTestBot(store, &fakeBrain{})

	_, err := b.execute(context.Background(), &llm.Intent{
		Action: llm.ActionAddTransaction, Type: "expense",
		Amount: 120000, Description: "شام", Category: "restaurants",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.transactions[0].Category; got != "other" {
		t.Errorf("out-of-enumeration category stored as %q, want other", got)
	}
	if got := store.transactions[0].Amount; got != 120000 {
		t.Errorf("amount stored as %d, want 120000 unchanged", got)
	}

	_, err = b.execute(context.Background(), &llm.Intent{
		Action: llm.ActionAddTransaction, Type: "expense",
		Amount: 80000, Description: "ناهار", Category: "food",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.transactions[1].Category; got != "food" {
		t.Errorf("in-enumeration category stored as %q, want food", got)
	}
}

func TestAddTransactionStampsLocalDateTime(t *testing.T) {
	store := newMemStore()
	b, _ := newTestBot(store, &fakeBrain{})

	reply, err := b.execute(context.Background(), &llm.Intent{
		Action: llm.ActionAddTransaction, Type: "income",
		Amount: 500, Description: "هدیه", Category: "gift",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tx := store.transactions[0]
	if tx.Date != "2025-04-15" || tx.Time != "12:00" {
		t.Errorf("stamped %s %s", tx.Date, tx.Time)
	}
	if !strings.Contains(reply, "هدیه") {
		t.Errorf("confirmation must echo the description: %q", reply)
	}
}

func TestUpdateBalanceLastWriteWins(t *testing.T) {
	store := newMemStore()
	b, _ := newTestBot(store, &fakeBrain{})
	ctx := context.Background()

	// Pre-existing account with a field outside the upsert's reach; it has
	// to survive every re-declaration of the same name.
	store.accounts["ملت"] = &models.Account{ID: "keep-me", Name: "ملت", Balance: 500}

	for _, balance := range []int64{1000, 2500} {
		if _, err := b.execute(ctx, &llm.Intent{
			Action: llm.ActionUpdateBalance, Name: "ملت", Balance: balance,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	reply, err := b.execute(ctx, &llm.Intent{Action: llm.ActionGetBalance, Name: "ملت"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "2,500") {
		t.Errorf("balance reply = %q, want the latest value", reply)
	}
	if len(store.accounts) != 1 {
		t.Errorf("re-declaring a name must upsert, got %d accounts", len(store.accounts))
	}
	if got := store.accounts["ملت"].ID; got != "keep-me" {
		t.Errorf("unrelated field overwritten: ID = %q, want keep-me (merge, not replace)", got)
	}
}

func TestGetBalanceAll(t *testing.T) {
	store := newMemStore()
	b, _ := newTestBot(store, &fakeBrain{})
	ctx := context.Background()

	reply, err := b.execute(ctx, &llm.Intent{Action: llm.ActionGetBalance, Name: "all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != replyNoAccounts {
		t.Errorf("empty store must return guidance, got %q", reply)
	}

	store.UpsertAccount(ctx, "ملت", 1000)
	store.UpsertAccount(ctx, "ملی", 2000)
	reply, err = b.execute(ctx, &llm.Intent{Action: llm.ActionGetBalance, Name: "all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"ملت", "ملی", "3,000"} {
		if !strings.Contains(reply, want) {
			t.Errorf("breakdown reply %q missing %q", reply, want)
		}
	}
}

func TestGetBalanceUnknownName(t *testing.T) {
	b, _ := newTestBot(newMemStore(), &fakeBrain{})
	reply, err := b.execute(context.Background(), &llm.Intent{Action: llm.ActionGetBalance, Name: "پاسارگاد"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "ثبت نشده") {
		t.Errorf("missing account must report not found, got %q", reply)
	}
}

func seedTransaction(store *memStore, kind string, amount int64, category string, createdAt time.Time) {
	store.transactions = append(store.transactions, models.Transaction{
		Kind: kind, Amount: amount, Category: category,
		Description: "seed", CreatedAt: createdAt,
		Date: createdAt.Format("2006-01-02"), Time: createdAt.Format("15:04"),
	})
}

func TestGetReportMath(t *testing.T) {
	store := newMemStore()
	b, _ := newTestBot(store, &fakeBrain{})
	ctx := context.Background()

	seedTransaction(store, models.KindIncome, 100, "salary", fixedNow.Add(-time.Hour))
	seedTransaction(store, models.KindExpense, 40, "food", fixedNow.Add(-30*time.Minute))
	// Yesterday's record must stay outside the today window.
	seedTransaction(store, models.KindExpense, 999, "food", fixedNow.AddDate(0, 0, -1))

	reply, err := b.execute(ctx, &llm.Intent{Action: llm.ActionGetReport, Type: "all", Period: llm.PeriodToday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "60") {
		t.Errorf("net report = %q, want net 60", reply)
	}

	reply, err = b.execute(ctx, &llm.Intent{Action: llm.ActionGetReport, Type: "expense", Period: llm.PeriodToday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "40") {
		t.Errorf("expense report = %q, want 40", reply)
	}
}

func TestTransactionListEmptyWindow(t *testing.T) {
	b, _ := newTestBot(newMemStore(), &fakeBrain{})
	reply, err := b.execute(context.Background(), &llm.Intent{
		Action: llm.ActionGetTransactionList, Type: "expense", Period: llm.PeriodToday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != replyNoTransactions {
		t.Errorf("empty window reply = %q, want the no-transactions text", reply)
	}
}

func TestTransactionListNewestFirst(t *testing.T) {
	store := newMemStore()
	b, _ := newTestBot(store, &fakeBrain{})

	older := models.Transaction{Kind: models.KindExpense, Amount: 10, Category: "food",
		Description: "قدیمی", CreatedAt: fixedNow.Add(-2 * time.Hour)}
	newer := models.Transaction{Kind: models.KindExpense, Amount: 20, Category: "food",
		Description: "جدید", CreatedAt: fixedNow.Add(-time.Hour)}
	store.transactions = append(store.transactions, older, newer)

	reply, err := b.execute(context.Background(), &llm.Intent{
		Action: llm.ActionGetTransactionList, Type: "all", Period: llm.PeriodToday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Index(reply, "جدید") > strings.Index(reply, "قدیمی") {
		t.Errorf("list must be newest-first:\n%s", reply)
	}
}

func TestSetReminderRollover(t *testing.T) {
	cases := []struct {
		name    string
		clock   string
		wantDay int
	}{
		{"time already passed rolls to tomorrow", "09:00", 16},
		{"time still ahead stays today", "15:30", 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			b, _ := newTestBot(store, &fakeBrain{})
			_, err := b.execute(context.Background(), &llm.Intent{
				Action: llm.ActionSetReminder, Time: tc.clock, Message: "قسط",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			reminder := store.reminders[0]
			if reminder.Sent {
				t.Error("reminder must be created with sent=false")
			}
			if reminder.RunAt.Day() != tc.wantDay {
				t.Errorf("scheduled day = %d, want %d", reminder.RunAt.Day(), tc.wantDay)
			}
			if got := reminder.RunAt.Format("15:04"); got != tc.clock {
				t.Errorf("wall clock round-trip = %q, want %q", got, tc.clock)
			}
			if !reminder.RunAt.After(fixedNow) {
				t.Error("scheduled instant must be in the future")
			}
		})
	}
}

func TestAskQuestionContextBlock(t *testing.T) {
	store := newMemStore()
	brain := &fakeBrain{answer: "وضعیتت خوبه"}
	b, _ := newTestBot(store, brain)
	ctx := context.Background()

	// Empty store: every section carries the explicit placeholder.
	reply, err := b.execute(ctx, &llm.Intent{Action: llm.ActionAskQuestion, Question: "چطورم؟"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "وضعیتت خوبه" {
		t.Errorf("answer must be returned verbatim, got %q", reply)
	}
	if got := strings.Count(brain.contexts[0], noDataPlaceholder); got != 3 {
		t.Errorf("empty sections with placeholder = %d, want 3", got)
	}

	seedTransaction(store, models.KindExpense, 50, "food", fixedNow.Add(-time.Hour))
	store.accounts["ملت"] = &models.Account{Name: "ملت", Balance: 700}
	store.installments = append(store.installments, models.Installment{Name: "وام", Amount: 900, DayOfMonth: 5})

	if _, err := b.execute(ctx, &llm.Intent{Action: llm.ActionAskQuestion, Question: "چطورم؟"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := brain.contexts[1]
	for _, want := range []string{"ملت", "وام", "700", "900"} {
		if !strings.Contains(block, want) {
			t.Errorf("context block missing %q:\n%s", want, block)
		}
	}
	txIdx := strings.Index(block, "تراکنش")
	accIdx := strings.Index(block, "موجودی حساب")
	instIdx := strings.Index(block, "اقساط")
	if !(txIdx < accIdx && accIdx < instIdx) {
		t.Error("context sections must keep the fixed order: transactions, accounts, installments")
	}
}

func TestGetAnalysisUsesComputedSummary(t *testing.T) {
	store := newMemStore()
	brain := &fakeBrain{advice: "کمتر خرج کن"}
	b, _ := newTestBot(store, brain)

	seedTransaction(store, models.KindIncome, 300, "salary", fixedNow.Add(-time.Hour))
	seedTransaction(store, models.KindExpense, 100, "food", fixedNow.Add(-30*time.Minute))

	reply, err := b.execute(context.Background(), &llm.Intent{Action: llm.ActionGetAnalysis, Period: llm.PeriodToday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "کمتر خرج کن" {
		t.Errorf("narrative must come back verbatim, got %q", reply)
	}
	summary := brain.contexts[0]
	for _, want := range []string{"300", "100", "200"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestGetAnalysisEmptyWindow(t *testing.T) {
	b, _ := newTestBot(newMemStore(), &fakeBrain{advice: "x"})
	reply, err := b.execute(context.Background(), &llm.Intent{Action: llm.ActionGetAnalysis, Period: llm.PeriodWeek})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != replyNoTransactions {
		t.Errorf("empty window reply = %q", reply)
	}
}
