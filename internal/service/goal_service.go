package service

import (
	"context"
	"errors"
	"math"
	"time"

	"real-balance/internal/dto"
	"real-balance/internal/models"
	"real-balance/internal/repository"

	"go.uber.org/zap"
)

const deadlineLayout = "2006-01-02"

type GoalService struct {
	store  *repository.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewGoalService(store *repository.Store, logger *zap.Logger) *GoalService {
	return &GoalService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *GoalService) List(ctx context.Context, userID int64) ([]*models.Goal, error) {
	goals, err := s.store.Goals().ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list goals", err)
	}
	return goals, nil
}

// Create adds a goal owned by userID. Deadline, when given, is a calendar
// date (YYYY-MM-DD); blank optional fields are stored as null.
func (s *GoalService) Create(ctx context.Context, userID int64, req *dto.CreateGoalRequest) (*models.Goal, error) {
	name := cleanText(req.Name)
	if name == "" {
		return nil, validationError("name", "name is required")
	}
	if req.TargetAmount == nil {
		return nil, validationError("target_amount", "target_amount is required")
	}
	target := *req.TargetAmount
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return nil, validationError("target_amount", "target_amount must be a positive number")
	}

	deadline := blankToNil(cleanOptional(req.Deadline))
	if deadline != nil {
		if _, err := time.Parse(deadlineLayout, *deadline); err != nil {
			return nil, validationError("deadline", "deadline must be a date formatted YYYY-MM-DD")
		}
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		Icon:         blankToNil(cleanOptional(req.Icon)),
		CreatedAt:    s.now(),
	}
	if err := s.store.Goals().Create(ctx, goal); err != nil {
		return nil, storeError("create goal", err)
	}

	s.logger.Debug("Goal created", zap.Int64("user_id", userID), zap.Int64("goal_id", goal.ID))
	return goal, nil
}

// Delete removes goal id if userID owns it; otherwise ErrGoalMissing.
func (s *GoalService) Delete(ctx context.Context, userID, id int64) error {
	err := s.store.Goals().DeleteOwned(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalMissing
	}
	return storeError("delete goal", err)
}
