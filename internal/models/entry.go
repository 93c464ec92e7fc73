package models

import "time"

// TextEntry is the anchor record of a journal entry. Photos and expenses
// reference it by entry_id.
type TextEntry struct {
	ID        string    `db:"entry_id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Location  string    `db:"location"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	CreatedAt time.Time `db:"created_at"`
}

// ExpenseLine is one itemized expense as shown inside an aggregated entry.
type ExpenseLine struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// EntryDetails is a TextEntry aggregated with its child photos, expense
// lines and an author snapshot. AuthorName and AuthorPic are nil when no
// matching user row exists.
type EntryDetails struct {
	TextEntry
	PhotoURLs  []string
	Expenses   []ExpenseLine
	AuthorName *string
	AuthorPic  *string
}
