package repository

import (
	"context"
	"fmt"
	"strings"

	"real-balance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var userColumns = []string{
	"id", "name", "email", "username", "contact", "gender", "marital_status",
	"id_number", "address", "photo", "password", "currency", "language", "theme",
	"created_at", "updated_at",
}

type UserRepository struct {
	db     DBTX
	sb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func NewUserRepository(db DBTX, sb squirrel.StatementBuilderType, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		sb:     sb,
		logger: logger,
	}
}

// Create inserts user and assigns its generated ID. A taken email or username
// surfaces as ErrDuplicateEmail or ErrDuplicateUsername. Zero preferences are
// stored as the defaults.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Preferences == (models.Preferences{}) {
		user.Preferences = models.DefaultPreferences()
	}
	prefs := user.Preferences
	query := r.sb.Insert("users").
		Columns("name", "email", "username", "contact", "gender", "marital_status",
			"id_number", "address", "photo", "password", "currency", "language", "theme",
			"created_at", "updated_at").
		Values(user.Name, user.Email, user.Username, user.Contact, user.Gender, user.MaritalStatus,
			user.IDNumber, user.Address, user.Photo, user.PasswordHash,
			prefs.Currency, prefs.Language, prefs.Theme,
			toMillis(user.CreatedAt), toMillis(user.UpdatedAt)).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&user.ID); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// FindByEmailOrUsername resolves a login identifier. Emails are stored
// lowercased, so the email side compares case-insensitively. When one user's
// email equals another user's username, the username match wins.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	query := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Or{
			squirrel.Eq{"username": identifier},
			squirrel.Eq{"email": strings.ToLower(identifier)},
		}).
		OrderByClause("CASE WHEN username = ? THEN 0 ELSE 1 END", identifier).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRowContext(ctx, sql, args...))
}

// EmailTaken reports whether another user (not exceptID) holds email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	return r.exists(ctx, squirrel.And{squirrel.Eq{"email": email}, squirrel.NotEq{"id": exceptID}})
}

// UsernameTaken reports whether another user (not exceptID) holds username.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	return r.exists(ctx, squirrel.And{squirrel.Eq{"username": username}, squirrel.NotEq{"id": exceptID}})
}

// Update overwrites every mutable column of user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := r.sb.Update("users").
		Set("name", user.Name).
		Set("email", user.Email).
		Set("username", user.Username).
		Set("contact", user.Contact).
		Set("gender", user.Gender).
		Set("marital_status", user.MaritalStatus).
		Set("id_number", user.IDNumber).
		Set("address", user.Address).
		Set("photo", user.Photo).
		Set("password", user.PasswordHash).
		Set("currency", user.Preferences.Currency).
		Set("language", user.Preferences.Language).
		Set("theme", user.Preferences.Theme).
		Set("updated_at", toMillis(user.UpdatedAt)).
		Where(squirrel.Eq{"id": user.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// Delete removes the user row. Dependent ledger rows must already be gone.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

func (r *UserRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*models.User, error) {
	query := r.sb.Select(userColumns...).
		From("users").
		Where(pred)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRowContext(ctx, sql, args...))
}

func (r *UserRepository) exists(ctx context.Context, pred squirrel.Sqlizer) (bool, error) {
	query := r.sb.Select("COUNT(*)").
		From("users").
		Where(pred)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user      models.User
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Username, &user.Contact, &user.Gender,
		&user.MaritalStatus, &user.IDNumber, &user.Address, &user.Photo, &user.PasswordHash,
		&user.Preferences.Currency, &user.Preferences.Language, &user.Preferences.Theme,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return &user, nil
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(res rowsAffecter) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
