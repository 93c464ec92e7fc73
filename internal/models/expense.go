package models

import "time"

type Expense struct {
	ID        string    `db:"expense_id"`
	EntryID   string    `db:"entry_id"`
	UserID    string    `db:"user_id"`
	Category  string    `db:"category"`
	Amount    float64   `db:"amount"`
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
}

// ExpenseDetails is an expense joined with its owning entry and the entry
// author, as returned by expense search.
type ExpenseDetails struct {
	Expense
	EntryTitle     string
	EntryLocation  string
	EntryCreatedAt time.Time
	AuthorName     *string
	AuthorPic      *string
}
