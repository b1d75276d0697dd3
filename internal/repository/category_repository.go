package repository

import (
	"context"
	"database/sql"

	"real-balance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     DBTX
	sb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func NewCategoryRepository(db DBTX, sb squirrel.StatementBuilderType, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		sb:     sb,
		logger: logger,
	}
}

// visibleTo matches categories owned by userID plus the owner-less defaults.
func visibleTo(userID int64) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"user_id": nil},
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	var ownerID sql.NullInt64
	if id := category.OwnerID(); id != nil {
		ownerID = sql.NullInt64{Int64: *id, Valid: true}
	}

	query, args, err := r.sb.Insert("categories").
		Columns("user_id", "name", "type").
		Values(ownerID, category.Name, string(category.Type)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&category.ID); err != nil {
		return translateError(err)
	}
	return nil
}

// ListVisible returns the caller's categories and the global ones, optionally
// restricted to one entry type.
func (r *CategoryRepository) ListVisible(ctx context.Context, userID int64, entryType *models.EntryType) ([]*models.Category, error) {
	builder := r.sb.Select("id", "user_id", "name", "type").
		From("categories").
		Where(visibleTo(userID)).
		OrderBy("id ASC")
	if entryType != nil {
		builder = builder.Where(squirrel.Eq{"type": string(*entryType)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetVisible loads a category only if userID may see it; otherwise ErrNotFound.
func (r *CategoryRepository) GetVisible(ctx context.Context, userID, id int64) (*models.Category, error) {
	query, args, err := r.sb.Select("id", "user_id", "name", "type").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		Where(visibleTo(userID)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCategory(r.db.QueryRowContext(ctx, query, args...))
}

// DeleteOwned deletes category id only when userID owns it. Global categories
// and other users' categories are reported as ErrNotFound, same as missing ones.
func (r *CategoryRepository) DeleteOwned(ctx context.Context, userID, id int64) error {
	query, args, err := r.sb.Delete("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// DeleteByOwner removes every category owned by userID and returns how many went.
func (r *CategoryRepository) DeleteByOwner(ctx context.Context, userID int64) (int64, error) {
	query, args, err := r.sb.Delete("categories").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

// CountGlobal counts the owner-less default categories.
func (r *CategoryRepository) CountGlobal(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("categories").
		Where(squirrel.Eq{"user_id": nil}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var (
		category  models.Category
		ownerID   sql.NullInt64
		entryType string
	)
	if err := row.Scan(&category.ID, &ownerID, &category.Name, &entryType); err != nil {
		return nil, translateError(err)
	}
	category.Type = models.EntryType(entryType)
	if ownerID.Valid {
		category.Owner = models.OwnedBy{UserID: ownerID.Int64}
	} else {
		category.Owner = models.Global{}
	}
	return &category, nil
}
