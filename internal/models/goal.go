package models

import "time"

// Goal is a savings target. It always belongs to exactly one user.
type Goal struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Name         string    `db:"name"`
	TargetAmount float64   `db:"target_amount"`
	Deadline     *string   `db:"deadline"`
	Icon         *string   `db:"icon"`
	CreatedAt    time.Time `db:"created_at"`
}
