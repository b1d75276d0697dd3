package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"real-balance/internal/repository/migrations"
	"real-balance/pkg/database"
	"real-balance/pkg/migrate"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Users        *UserRepository
	Categories   *CategoryRepository
	Transactions *TransactionRepository
	Goals        *GoalRepository
}

// Store owns the database handle and hands out repositories, either directly
// on the pool or scoped to a single transaction.
type Store struct {
	db      *sql.DB
	dialect database.Dialect
	sb      squirrel.StatementBuilderType
	logger  *zap.Logger
	repos   Repositories
}

func NewStore(db *sql.DB, dialect database.Dialect, logger *zap.Logger) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
		logger:  logger,
	}
	s.repos = s.bind(db)
	return s
}

func (s *Store) bind(q DBTX) Repositories {
	return Repositories{
		Users:        NewUserRepository(q, s.sb, s.logger),
		Categories:   NewCategoryRepository(q, s.sb, s.logger),
		Transactions: NewTransactionRepository(q, s.sb, s.logger),
		Goals:        NewGoalRepository(q, s.sb, s.logger),
	}
}

// Migrate applies the embedded schema for the store's dialect.
func (s *Store) Migrate(ctx context.Context) error {
	if err := migrate.Apply(ctx, s.db, s.dialect.Placeholder(), migrations.FS, string(s.dialect)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Users() *UserRepository {
	return s.repos.Users
}

func (s *Store) Categories() *CategoryRepository {
	return s.repos.Categories
}

func (s *Store) Transactions() *TransactionRepository {
	return s.repos.Transactions
}

func (s *Store) Goals() *GoalRepository {
	return s.repos.Goals
}

// WithTx runs fn against repositories bound to one database transaction. The
// transaction commits only if fn returns nil; any error or panic rolls it back.
func (s *Store) WithTx(ctx context.Context, fn func(repos Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(s.bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", translateError(err))
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
