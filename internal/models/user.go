package models

import "time"

// User is an account holder. PasswordHash is a bcrypt digest, never the plaintext.
type User struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Username      string    `db:"username"`
	Contact       *string   `db:"contact"`
	Gender        *string   `db:"gender"`
	MaritalStatus *string   `db:"marital_status"`
	IDNumber      *string   `db:"id_number"`
	Address       *string   `db:"address"`
	Photo         *string   `db:"photo"`
	PasswordHash  string    `db:"password"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	Preferences Preferences
}

// Preferences are display settings only; they never affect stored amounts.
type Preferences struct {
	Currency string `db:"currency"`
	Language string `db:"language"`
	Theme    string `db:"theme"`
}

// DefaultPreferences is what a new account starts with.
func DefaultPreferences() Preferences {
	return Preferences{Currency: "AOA", Language: "pt", Theme: "light"}
}
