package models

import "time"

// Transaction is one ledger entry. Date is kept exactly as supplied; listings
// sort it lexicographically, so ISO 8601 dates order correctly.
type Transaction struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	CategoryID  int64     `db:"category_id"`
	Amount      float64   `db:"amount"`
	Description string    `db:"description"`
	Date        string    `db:"date"`
	Type        EntryType `db:"type"`
	CreatedAt   time.Time `db:"created_at"`

	// CategoryName is resolved from the category at read time and never persisted.
	CategoryName string `db:"-"`
}
