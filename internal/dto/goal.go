package dto

import "real-balance/internal/models"

type CreateGoalRequest struct {
	Name         string   `json:"name"`
	TargetAmount *float64 `json:"target_amount"`
	Deadline     *string  `json:"deadline"`
	Icon         *string  `json:"icon"`
}

type GoalResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     *string `json:"deadline"`
	Icon         *string `json:"icon"`
}

func NewGoalResponse(goal *models.Goal) GoalResponse {
	return GoalResponse{
		ID:           goal.ID,
		UserID:       goal.UserID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount,
		Deadline:     goal.Deadline,
		Icon:         goal.Icon,
	}
}

func NewGoalResponses(goals []*models.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, NewGoalResponse(g))
	}
	return out
}
