package service

import (
	"strings"

	"real-balance/internal/dto"
	"real-balance/internal/models"
	"real-balance/internal/repository"
	"real-balance/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *ServiceTestSuite) TestRegisterThenLogin() {
	user := s.register("ana", "Ana@X.com ", "p@ss1234")
	assert.Equal(s.T(), "ana", user.Name, "name defaults to the username")
	assert.Equal(s.T(), "ana@x.com", user.Email)
	assert.NotEqual(s.T(), "p@ss1234", user.PasswordHash)

	for _, identifier := range []string{"ana", "ana@x.com", "ANA@x.com"} {
		resp, err := s.auth.Login(s.ctx, &dto.LoginRequest{Username: identifier, Password: "p@ss1234"})
		require.NoError(s.T(), err, identifier)
		assert.Equal(s.T(), user.ID, resp.User.ID)
		assert.Equal(s.T(), int64(3600), resp.ExpiresIn)

		claims, err := s.jwt.ValidateToken(resp.Token)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), user.ID, claims.UserID)
		assert.Equal(s.T(), "ana", claims.Username)
	}
}

func (s *ServiceTestSuite) TestRegister_DuplicateUsername() {
	s.register("ana", "ana@x.com", "p@ss1234")

	_, err := s.auth.Register(s.ctx, &dto.RegisterRequest{
		Username: "ana", Email: "other@x.com", Password: "p@ss1234",
	})
	appErr := s.requireCode(err, apperrors.CodeDuplicateCredential)
	assert.Equal(s.T(), "username", appErr.Param)

	_, err = s.store.Users().GetByEmail(s.ctx, "other@x.com")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound, "no partial user row")
}

func (s *ServiceTestSuite) TestRegister_DuplicateEmail() {
	s.register("ana", "ana@x.com", "p@ss1234")

	_, err := s.auth.Register(s.ctx, &dto.RegisterRequest{
		Username: "ana2", Email: "ANA@x.com", Password: "p@ss1234",
	})
	appErr := s.requireCode(err, apperrors.CodeDuplicateCredential)
	assert.Equal(s.T(), "email", appErr.Param)
}

func (s *ServiceTestSuite) TestRegister_Validation() {
	tests := []struct {
		name  string
		req   dto.RegisterRequest
		field string
	}{
		{"missing username", dto.RegisterRequest{Email: "a@x.com", Password: "pw"}, "username"},
		{"blank username", dto.RegisterRequest{Username: "  ", Email: "a@x.com", Password: "pw"}, "username"},
		{"missing email", dto.RegisterRequest{Username: "a", Password: "pw"}, "email"},
		{"missing password", dto.RegisterRequest{Username: "a", Email: "a@x.com"}, "password"},
		{"long password", dto.RegisterRequest{Username: "a", Email: "a@x.com", Password: strings.Repeat("x", 73)}, "password"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.auth.Register(s.ctx, &tt.req)
			appErr := s.requireCode(err, apperrors.CodeValidation)
			assert.Equal(s.T(), tt.field, appErr.Param)
		})
	}
}

func (s *ServiceTestSuite) TestLogin_FailuresAreIndistinguishable() {
	s.register("ana", "ana@x.com", "p@ss1234")

	_, wrongPassword := s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "nope"})
	_, unknownUser := s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ghost", Password: "p@ss1234"})
	_, empty := s.auth.Login(s.ctx, &dto.LoginRequest{})

	for _, err := range []error{wrongPassword, unknownUser, empty} {
		s.requireCode(err, apperrors.CodeInvalidCredentials)
		assert.Equal(s.T(), ErrInvalidCredentials.Error(), err.Error())
	}
}

func (s *ServiceTestSuite) TestUpdateProfile_ReissuesToken() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	login, err := s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "p@ss1234"})
	require.NoError(s.T(), err)

	resp, err := s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{
		Username: ptr("ana.silva"),
		Address:  ptr("Rua 1"),
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ana.silva", resp.User.Username)
	require.NotNil(s.T(), resp.User.Address)
	assert.Equal(s.T(), "Rua 1", *resp.User.Address)
	assert.Equal(s.T(), "ana@x.com", resp.User.Email, "untouched fields keep their value")

	claims, err := s.jwt.ValidateToken(resp.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ana.silva", claims.Username)

	// the earlier token is not revoked
	user, err := s.auth.Authenticate(s.ctx, login.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ana.silva", user.Username)
}

func (s *ServiceTestSuite) TestUpdateProfile_Conflicts() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	s.register("bob", "bob@x.com", "p@ss1234")

	_, err := s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{Username: ptr("bob")})
	appErr := s.requireCode(err, apperrors.CodeDuplicateCredential)
	assert.Equal(s.T(), "username", appErr.Param)

	_, err = s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{Email: ptr("bob@x.com")})
	appErr = s.requireCode(err, apperrors.CodeDuplicateCredential)
	assert.Equal(s.T(), "email", appErr.Param)

	// re-submitting your own values is not a conflict
	_, err = s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{Username: ptr("ana"), Email: ptr("ana@x.com")})
	require.NoError(s.T(), err)

	_, err = s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{Name: ptr("  ")})
	appErr = s.requireCode(err, apperrors.CodeValidation)
	assert.Equal(s.T(), "name", appErr.Param)
}

func (s *ServiceTestSuite) TestUpdateProfile_Password() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")

	_, err := s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{Password: ptr("")})
	require.NoError(s.T(), err)
	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "p@ss1234"})
	require.NoError(s.T(), err, "empty password keeps the old one")

	_, err = s.auth.UpdateProfile(s.ctx, ana, &dto.UpdateProfileRequest{Password: ptr("n3w-secret")})
	require.NoError(s.T(), err)

	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "p@ss1234"})
	s.requireCode(err, apperrors.CodeInvalidCredentials)
	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "n3w-secret"})
	require.NoError(s.T(), err)
}

func (s *ServiceTestSuite) TestDeleteAccount_Cascades() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	login, err := s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "p@ss1234"})
	require.NoError(s.T(), err)

	salary := s.globalCategory("Salary")
	anaPets, err := s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: "Pets", Type: "expense"})
	require.NoError(s.T(), err)
	bobBoat, err := s.categories.Create(s.ctx, bob.ID, &dto.CreateCategoryRequest{Name: "Boat", Type: "expense"})
	require.NoError(s.T(), err)
	s.record(ana.ID, salary.ID, 500, "2024-01-05")
	s.record(ana.ID, anaPets.ID, 40, "2024-01-06")
	s.record(bob.ID, salary.ID, 900, "2024-01-07")
	s.record(bob.ID, bobBoat.ID, 100, "2024-01-08")
	_, err = s.goals.Create(s.ctx, ana.ID, &dto.CreateGoalRequest{Name: "Car", TargetAmount: ptr(8000.0)})
	require.NoError(s.T(), err)
	_, err = s.goals.Create(s.ctx, bob.ID, &dto.CreateGoalRequest{Name: "Trip", TargetAmount: ptr(1200.0)})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.auth.DeleteAccount(s.ctx, ana))

	anaGoals, err := s.goals.List(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), anaGoals)
	bobGoals, err := s.goals.List(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), bobGoals, 1)

	anaTxs, err := s.store.Transactions().ListByUser(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), anaTxs)
	_, err = s.store.Categories().GetVisible(s.ctx, ana.ID, anaPets.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Username: "ana", Password: "p@ss1234"})
	s.requireCode(err, apperrors.CodeInvalidCredentials)

	_, err = s.auth.Authenticate(s.ctx, login.Token)
	s.requireCode(err, apperrors.CodeUnauthenticated)

	bobTxs, err := s.transactions.List(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), bobTxs, 2)
	bobCategories, err := s.categories.List(s.ctx, bob.ID, "expense")
	require.NoError(s.T(), err)
	assert.Contains(s.T(), categoryNames(bobCategories), "Boat")

	global, err := s.store.Categories().CountGlobal(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(len(DefaultCategories)), global)
}

func (s *ServiceTestSuite) TestAuthenticate() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	token, err := s.jwt.GenerateToken(ana.ID, ana.Username)
	require.NoError(s.T(), err)

	user, err := s.auth.Authenticate(s.ctx, token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), ana.ID, user.ID)

	for _, bad := range []string{"", "not-a-token", token + "x"} {
		_, err := s.auth.Authenticate(s.ctx, bad)
		s.requireCode(err, apperrors.CodeUnauthenticated)
	}

	ghost, err := s.jwt.GenerateToken(ana.ID+1000, "ghost")
	require.NoError(s.T(), err)
	_, err = s.auth.Authenticate(s.ctx, ghost)
	s.requireCode(err, apperrors.CodeUnauthenticated)
}

func (s *ServiceTestSuite) TestUpdatePreferences() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	assert.Equal(s.T(), models.DefaultPreferences(), ana.Preferences)

	updated, err := s.auth.UpdatePreferences(s.ctx, ana, &dto.UpdatePreferencesRequest{
		Currency: ptr(" usd "),
		Theme:    ptr("Dark"),
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.Preferences{Currency: "USD", Language: "pt", Theme: "dark"}, updated.Preferences)

	stored, err := s.store.Users().GetByID(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), updated.Preferences, stored.Preferences)
	assert.Equal(s.T(), ana.PasswordHash, stored.PasswordHash)

	tests := []struct {
		name  string
		req   dto.UpdatePreferencesRequest
		field string
	}{
		{"short currency", dto.UpdatePreferencesRequest{Currency: ptr("EU")}, "currency"},
		{"numeric currency", dto.UpdatePreferencesRequest{Currency: ptr("9AB")}, "currency"},
		{"blank language", dto.UpdatePreferencesRequest{Language: ptr("  ")}, "language"},
		{"unknown theme", dto.UpdatePreferencesRequest{Theme: ptr("neon")}, "theme"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.auth.UpdatePreferences(s.ctx, stored, &tt.req)
			assert.Equal(s.T(), tt.field, s.requireCode(err, apperrors.CodeValidation).Param)
		})
	}
}
