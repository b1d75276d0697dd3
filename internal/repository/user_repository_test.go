package repository

import (
	"time"

	"real-balance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *StoreTestSuite) TestUser_CreateAndGet() {
	contact := "+244 900 000 000"
	now := time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)
	user := &models.User{
		Name:         "Ana Silva",
		Email:        "ana@x.com",
		Username:     "ana",
		Contact:      &contact,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(s.T(), s.store.Users().Create(s.ctx, user))
	assert.Positive(s.T(), user.ID)

	got, err := s.store.Users().GetByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Ana Silva", got.Name)
	assert.Equal(s.T(), "ana@x.com", got.Email)
	require.NotNil(s.T(), got.Contact)
	assert.Equal(s.T(), contact, *got.Contact)
	assert.Nil(s.T(), got.Gender)
	assert.Equal(s.T(), models.DefaultPreferences(), got.Preferences, "zero preferences store as defaults")
	assert.True(s.T(), got.CreatedAt.Equal(now))

	_, err = s.store.Users().GetByID(s.ctx, user.ID+100)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *StoreTestSuite) TestUser_UniqueConstraints() {
	s.createUser("ana", "ana@x.com")

	now := time.Now()
	err := s.store.Users().Create(s.ctx, &models.User{
		Name: "Ana 2", Email: "other@x.com", Username: "ana", PasswordHash: "hash",
		CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(s.T(), err, ErrDuplicateUsername)

	err = s.store.Users().Create(s.ctx, &models.User{
		Name: "Ana 3", Email: "ana@x.com", Username: "ana3", PasswordHash: "hash",
		CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)
}

func (s *StoreTestSuite) TestUser_FindByEmailOrUsername() {
	ana := s.createUser("ana", "ana@x.com")
	// bob's username collides with nobody; carol uses ana's email as a username
	s.createUser("bob", "bob@x.com")
	carol := s.createUser("ana@x.com", "carol@x.com")

	got, err := s.store.Users().FindByEmailOrUsername(s.ctx, "ana")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), ana.ID, got.ID)

	got, err = s.store.Users().FindByEmailOrUsername(s.ctx, "bob@x.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "bob", got.Username)

	got, err = s.store.Users().FindByEmailOrUsername(s.ctx, "ana@x.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), carol.ID, got.ID, "username match wins over email match")

	_, err = s.store.Users().FindByEmailOrUsername(s.ctx, "nobody")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *StoreTestSuite) TestUser_Taken() {
	ana := s.createUser("ana", "ana@x.com")
	bob := s.createUser("bob", "bob@x.com")

	taken, err := s.store.Users().EmailTaken(s.ctx, "ana@x.com", bob.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.store.Users().EmailTaken(s.ctx, "ana@x.com", ana.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), taken, "own email is not a conflict")

	taken, err = s.store.Users().UsernameTaken(s.ctx, "bob", ana.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.store.Users().UsernameTaken(s.ctx, "carol", ana.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *StoreTestSuite) TestUser_UpdateAndDelete() {
	ana := s.createUser("ana", "ana@x.com")
	s.createUser("bob", "bob@x.com")

	address := "Rua 1"
	ana.Name = "Ana Maria"
	ana.Address = &address
	ana.Preferences = models.Preferences{Currency: "EUR", Language: "en", Theme: "dark"}
	ana.UpdatedAt = ana.UpdatedAt.Add(time.Hour)
	require.NoError(s.T(), s.store.Users().Update(s.ctx, ana))

	got, err := s.store.Users().GetByID(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Ana Maria", got.Name)
	require.NotNil(s.T(), got.Address)
	assert.Equal(s.T(), address, *got.Address)
	assert.Equal(s.T(), "EUR", got.Preferences.Currency)
	assert.Equal(s.T(), "dark", got.Preferences.Theme)

	ana.Username = "bob"
	assert.ErrorIs(s.T(), s.store.Users().Update(s.ctx, ana), ErrDuplicateUsername)

	require.NoError(s.T(), s.store.Users().Delete(s.ctx, ana.ID))
	assert.ErrorIs(s.T(), s.store.Users().Delete(s.ctx, ana.ID), ErrNotFound)
	_, err = s.store.Users().GetByID(s.ctx, ana.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}
