package service

import (
	"real-balance/internal/dto"
	"real-balance/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *ServiceTestSuite) TestGoals_CreateAndListScoped() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")

	car, err := s.goals.Create(s.ctx, ana.ID, &dto.CreateGoalRequest{
		Name:         "  Car ",
		TargetAmount: ptr(8000.0),
		Deadline:     ptr("2025-12-31"),
		Icon:         ptr(""),
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Car", car.Name)
	assert.Equal(s.T(), ana.ID, car.UserID)
	require.NotNil(s.T(), car.Deadline)
	assert.Equal(s.T(), "2025-12-31", *car.Deadline)
	assert.Nil(s.T(), car.Icon, "blank icon is stored as null")

	_, err = s.goals.Create(s.ctx, bob.ID, &dto.CreateGoalRequest{Name: "Boat", TargetAmount: ptr(50000.0)})
	require.NoError(s.T(), err)
	house, err := s.goals.Create(s.ctx, ana.ID, &dto.CreateGoalRequest{Name: "House", TargetAmount: ptr(90000.5)})
	require.NoError(s.T(), err)
	assert.Nil(s.T(), house.Deadline)

	goals, err := s.goals.List(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), goals, 2)
	assert.Equal(s.T(), car.ID, goals[0].ID)
	assert.Equal(s.T(), house.ID, goals[1].ID)
	assert.Equal(s.T(), 90000.5, goals[1].TargetAmount)
}

func (s *ServiceTestSuite) TestGoals_CreateValidation() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")

	tests := []struct {
		name  string
		req   dto.CreateGoalRequest
		field string
	}{
		{"missing name", dto.CreateGoalRequest{TargetAmount: ptr(10.0)}, "name"},
		{"missing target", dto.CreateGoalRequest{Name: "Car"}, "target_amount"},
		{"zero target", dto.CreateGoalRequest{Name: "Car", TargetAmount: ptr(0.0)}, "target_amount"},
		{"negative target", dto.CreateGoalRequest{Name: "Car", TargetAmount: ptr(-5.0)}, "target_amount"},
		{"bad deadline", dto.CreateGoalRequest{Name: "Car", TargetAmount: ptr(10.0), Deadline: ptr("31/12/2025")}, "deadline"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.goals.Create(s.ctx, ana.ID, &tt.req)
			assert.Equal(s.T(), tt.field, s.requireCode(err, apperrors.CodeValidation).Param)
		})
	}
}

func (s *ServiceTestSuite) TestGoals_DeleteForeignLooksMissing() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	trip, err := s.goals.Create(s.ctx, bob.ID, &dto.CreateGoalRequest{Name: "Trip", TargetAmount: ptr(1200.0)})
	require.NoError(s.T(), err)

	foreign := s.goals.Delete(s.ctx, ana.ID, trip.ID)
	missing := s.goals.Delete(s.ctx, ana.ID, trip.ID+1000)
	for _, err := range []error{foreign, missing} {
		s.requireCode(err, apperrors.CodeNotFound)
		assert.Equal(s.T(), ErrGoalMissing.Error(), err.Error())
	}

	require.NoError(s.T(), s.goals.Delete(s.ctx, bob.ID, trip.ID))
	goals, err := s.goals.List(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), goals)
}
