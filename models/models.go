package models

import "time"

// Transaction kinds.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// Transaction is a single logged expense or income. Records are append-only;
// nothing in the bot updates or deletes them after creation.
type Transaction struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Kind        string    `bson:"kind" json:"kind"`
	Amount      int64     `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Date        string    `bson:"date" json:"date"` // YYYY-MM-DD in the bot timezone
	Time        string    `bson:"time" json:"time"` // HH:MM in the bot timezone
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Account is a named balance. The name is the identity: declaring the same
// name again overwrites the balance (upsert).
type Account struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Name      string    `bson:"name" json:"name"`
	Balance   int64     `bson:"balance" json:"balance"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Installment is a recurring monthly payment entered out of band; the bot
// only reads these, for reminders and Q&A context.
type Installment struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	UserID     string `bson:"user_id" json:"user_id"`
	Name       string `bson:"name" json:"name"`
	Amount     int64  `bson:"amount" json:"amount"`
	DayOfMonth int    `bson:"day_of_month" json:"day_of_month"`
}

// Budget is a monthly spending cap for one expense category, entered out of
// band and read by the sweep job.
type Budget struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	UserID   string `bson:"user_id" json:"user_id"`
	Category string `bson:"category" json:"category"`
	Cap      int64  `bson:"cap" json:"cap"`
}

// Reminder is a one-shot scheduled message. The bot creates it with
// Sent=false; the sweep job delivers and deletes it once RunAt has passed.
type Reminder struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Message   string    `bson:"message" json:"message"`
	RunAt     time.Time `bson:"run_at" json:"run_at"`
	Sent      bool      `bson:"sent" json:"sent"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
