package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrForeignKey        = errors.New("record is still referenced")
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors onto the repository sentinels. Unknown
// errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicateFor(pgErr.ConstraintName, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		}
		return err
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return duplicateFor(err.Error(), err)
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		}
	}

	message := strings.ToLower(err.Error())
	if strings.Contains(message, "unique constraint failed") {
		return duplicateFor(message, err)
	}
	if strings.Contains(message, "foreign key constraint failed") {
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}
	return err
}

// duplicateFor picks the sentinel matching the column named in a constraint
// name ("users_email_key") or message ("UNIQUE constraint failed: users.email").
func duplicateFor(hint string, cause error) error {
	hint = strings.ToLower(hint)
	switch {
	case strings.Contains(hint, "email"):
		return fmt.Errorf("%w: %w", ErrDuplicateEmail, cause)
	case strings.Contains(hint, "username"):
		return fmt.Errorf("%w: %w", ErrDuplicateUsername, cause)
	default:
		return cause
	}
}
