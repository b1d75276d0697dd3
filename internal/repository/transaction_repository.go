package repository

import (
	"context"

	"real-balance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     DBTX
	sb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func NewTransactionRepository(db DBTX, sb squirrel.StatementBuilderType, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		sb:     sb,
		logger: logger,
	}
}

// Create inserts tx as given and assigns its generated ID. Ownership and
// category visibility are the caller's responsibility.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := r.sb.Insert("transactions").
		Columns("user_id", "category_id", "amount", "description", "date", "type", "created_at").
		Values(tx.UserID, tx.CategoryID, tx.Amount, tx.Description, tx.Date, string(tx.Type), toMillis(tx.CreatedAt)).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&tx.ID); err != nil {
		return translateError(err)
	}
	return nil
}

// ListByUser returns userID's transactions, newest date first, each carrying
// its category name.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	return r.list(ctx, squirrel.Eq{"t.user_id": userID})
}

// ListByUserBetween is ListByUser restricted to dates in [from, to). Dates
// compare as strings, so a "2024-03" bound covers every "2024-03-..." date.
func (r *TransactionRepository) ListByUserBetween(ctx context.Context, userID int64, from, to string) ([]*models.Transaction, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"t.user_id": userID},
		squirrel.GtOrEq{"t.date": from},
		squirrel.Lt{"t.date": to},
	})
}

func (r *TransactionRepository) list(ctx context.Context, pred squirrel.Sqlizer) ([]*models.Transaction, error) {
	query := r.sb.Select("t.id", "t.user_id", "t.category_id", "t.amount", "t.description",
		"t.date", "t.type", "t.created_at", "COALESCE(c.name, '')").
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category_id").
		Where(pred).
		OrderBy("t.date DESC", "t.id DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0)
	for rows.Next() {
		var (
			tx        models.Transaction
			entryType string
			createdAt int64
		)
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &tx.Description,
			&tx.Date, &entryType, &createdAt, &tx.CategoryName,
		); err != nil {
			return nil, err
		}
		tx.Type = models.EntryType(entryType)
		tx.CreatedAt = fromMillis(createdAt)
		transactions = append(transactions, &tx)
	}
	return transactions, rows.Err()
}

// DeleteOwned deletes transaction id only if userID owns it. A row owned by
// someone else is indistinguishable from a missing one: both are ErrNotFound.
func (r *TransactionRepository) DeleteOwned(ctx context.Context, userID, id int64) error {
	sql, args, err := r.sb.Delete("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// DeleteByUser removes all of userID's transactions and returns how many went.
func (r *TransactionRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Delete("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

// CountByCategory counts transactions of any user referencing categoryID.
func (r *TransactionRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
