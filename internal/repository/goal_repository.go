package repository

import (
	"context"

	"real-balance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type GoalRepository struct {
	db     DBTX
	sb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func NewGoalRepository(db DBTX, sb squirrel.StatementBuilderType, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		sb:     sb,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query, args, err := r.sb.Insert("goals").
		Columns("user_id", "name", "target_amount", "deadline", "icon", "created_at").
		Values(goal.UserID, goal.Name, goal.TargetAmount, goal.Deadline, goal.Icon, toMillis(goal.CreatedAt)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&goal.ID); err != nil {
		return translateError(err)
	}
	return nil
}

// ListByUser returns userID's goals in creation order.
func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Goal, error) {
	query, args, err := r.sb.Select("id", "user_id", "name", "target_amount", "deadline", "icon", "created_at").
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		var (
			goal      models.Goal
			createdAt int64
		)
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount,
			&goal.Deadline, &goal.Icon, &createdAt); err != nil {
			return nil, err
		}
		goal.CreatedAt = fromMillis(createdAt)
		goals = append(goals, &goal)
	}
	return goals, rows.Err()
}

// DeleteOwned answers ErrNotFound both for a missing goal and for one owned
// by another user.
func (r *GoalRepository) DeleteOwned(ctx context.Context, userID, id int64) error {
	query, args, err := r.sb.Delete("goals").
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

func (r *GoalRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	query, args, err := r.sb.Delete("goals").
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
