package service

import (
	"time"

	"real-balance/internal/dto"
	"real-balance/internal/models"
	"real-balance/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryNames(categories []*models.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func (s *ServiceTestSuite) TestSeedDefaults_Idempotent() {
	created, err := s.categories.SeedDefaults(s.ctx)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), created, "already seeded in SetupTest")

	count, err := s.store.Categories().CountGlobal(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(len(DefaultCategories)), count)
}

func (s *ServiceTestSuite) TestCategories_ListScopedAndFiltered() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	_, err := s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: "Pets", Type: "expense"})
	require.NoError(s.T(), err)
	_, err = s.categories.Create(s.ctx, bob.ID, &dto.CreateCategoryRequest{Name: "Boat", Type: "expense"})
	require.NoError(s.T(), err)

	all, err := s.categories.List(s.ctx, ana.ID, "")
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, len(DefaultCategories)+1)
	assert.Contains(s.T(), categoryNames(all), "Pets")
	assert.NotContains(s.T(), categoryNames(all), "Boat")

	income, err := s.categories.List(s.ctx, ana.ID, "income")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Salary", "Investment", "Other"}, categoryNames(income))

	none, err := s.categories.List(s.ctx, ana.ID, "transfer")
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), none)
	assert.Empty(s.T(), none)
}

func (s *ServiceTestSuite) TestCategories_CreateValidation() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")

	_, err := s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: " ", Type: "income"})
	assert.Equal(s.T(), "name", s.requireCode(err, apperrors.CodeValidation).Param)

	_, err = s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: "Gifts", Type: "gift"})
	assert.Equal(s.T(), "type", s.requireCode(err, apperrors.CodeValidation).Param)

	category, err := s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: " Gifts ", Type: "income"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Gifts", category.Name)
	assert.Equal(s.T(), models.OwnedBy{UserID: ana.ID}, category.Owner)
}

func (s *ServiceTestSuite) TestCategories_Delete() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	pets, err := s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: "Pets", Type: "expense"})
	require.NoError(s.T(), err)
	gifts, err := s.categories.Create(s.ctx, ana.ID, &dto.CreateCategoryRequest{Name: "Gifts", Type: "income"})
	require.NoError(s.T(), err)
	salary := s.globalCategory("Salary")

	s.requireCode(s.categories.Delete(s.ctx, ana.ID, salary.ID), apperrors.CodeNotFound)
	s.requireCode(s.categories.Delete(s.ctx, bob.ID, pets.ID), apperrors.CodeNotFound)
	s.requireCode(s.categories.Delete(s.ctx, ana.ID, 9999), apperrors.CodeNotFound)

	s.record(ana.ID, pets.ID, 12.5, "2024-01-01")
	s.requireCode(s.categories.Delete(s.ctx, ana.ID, pets.ID), apperrors.CodeCategoryInUse)

	require.NoError(s.T(), s.categories.Delete(s.ctx, ana.ID, gifts.ID))
	s.requireCode(s.categories.Delete(s.ctx, ana.ID, gifts.ID), apperrors.CodeNotFound)
}

func (s *ServiceTestSuite) TestTransactions_CreateForcesOwnerAndResolvesCategory() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	salary := s.globalCategory("Salary")

	tx := s.record(ana.ID, salary.ID, 500, "2024-01-05")
	assert.Equal(s.T(), ana.ID, tx.UserID)
	assert.Equal(s.T(), models.EntryTypeIncome, tx.Type, "type defaults to the category's type")
	assert.Equal(s.T(), "Salary", tx.CategoryName)

	listed, err := s.transactions.List(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), listed, 1)
	assert.Equal(s.T(), tx.ID, listed[0].ID)
	assert.Equal(s.T(), "Salary", listed[0].CategoryName)
}

func (s *ServiceTestSuite) TestTransactions_CreateValidation() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	salary := s.globalCategory("Salary")
	boat, err := s.categories.Create(s.ctx, bob.ID, &dto.CreateCategoryRequest{Name: "Boat", Type: "expense"})
	require.NoError(s.T(), err)

	tests := []struct {
		name  string
		req   dto.CreateTransactionRequest
		field string
	}{
		{"missing amount", dto.CreateTransactionRequest{Date: "2024-01-01", CategoryID: salary.ID}, "amount"},
		{"missing date", dto.CreateTransactionRequest{Amount: ptr(1.0), CategoryID: salary.ID}, "date"},
		{"missing category", dto.CreateTransactionRequest{Amount: ptr(1.0), Date: "2024-01-01"}, "category_id"},
		{"unknown category", dto.CreateTransactionRequest{Amount: ptr(1.0), Date: "2024-01-01", CategoryID: 9999}, "category_id"},
		{"someone else's category", dto.CreateTransactionRequest{Amount: ptr(1.0), Date: "2024-01-01", CategoryID: boat.ID}, "category_id"},
		{"unknown type", dto.CreateTransactionRequest{Amount: ptr(1.0), Date: "2024-01-01", CategoryID: salary.ID, Type: "gift"}, "type"},
		{"type mismatch", dto.CreateTransactionRequest{Amount: ptr(1.0), Date: "2024-01-01", CategoryID: salary.ID, Type: "expense"}, "type"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.transactions.Create(s.ctx, ana.ID, &tt.req)
			assert.Equal(s.T(), tt.field, s.requireCode(err, apperrors.CodeValidation).Param)
		})
	}

	listed, err := s.transactions.List(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), listed)
}

func (s *ServiceTestSuite) TestTransactions_ListNeverLeaksOtherUsers() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	food := s.globalCategory("Food")

	s.record(ana.ID, food.ID, 10, "2024-01-02")
	s.record(bob.ID, food.ID, 20, "2024-01-03")
	s.record(ana.ID, food.ID, 30, "2024-03-01")

	for _, user := range []*models.User{ana, bob} {
		listed, err := s.transactions.List(s.ctx, user.ID)
		require.NoError(s.T(), err)
		for _, tx := range listed {
			assert.Equal(s.T(), user.ID, tx.UserID)
		}
	}

	listed, err := s.transactions.List(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), listed, 2)
	assert.Equal(s.T(), "2024-03-01", listed[0].Date)
}

func (s *ServiceTestSuite) TestTransactions_DeleteForeignLooksMissing() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	food := s.globalCategory("Food")
	bobs := s.record(bob.ID, food.ID, 20, "2024-01-03")

	notOwned := s.transactions.Delete(s.ctx, ana.ID, bobs.ID)
	missing := s.transactions.Delete(s.ctx, ana.ID, bobs.ID+1000)
	s.requireCode(notOwned, apperrors.CodeNotFound)
	s.requireCode(missing, apperrors.CodeNotFound)
	assert.Equal(s.T(), missing.Error(), notOwned.Error())

	require.NoError(s.T(), s.transactions.Delete(s.ctx, bob.ID, bobs.ID))
}

func (s *ServiceTestSuite) TestTransactions_Balance() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	salary := s.globalCategory("Salary")
	food := s.globalCategory("Food")

	s.record(ana.ID, salary.ID, 1000.10, "2024-01-01")
	s.record(ana.ID, food.ID, 0.1, "2024-01-02")
	s.record(ana.ID, food.ID, 0.2, "2024-01-03")
	s.record(bob.ID, salary.ID, 5000, "2024-01-04")

	balance, err := s.transactions.Balance(s.ctx, ana.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1000.10, balance.TotalIncome)
	assert.Equal(s.T(), 0.3, balance.TotalExpense)
	assert.Equal(s.T(), 999.8, balance.Balance)

	empty, err := s.transactions.Balance(s.ctx, ana.ID+bob.ID+100)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), empty.Balance)
}

func (s *ServiceTestSuite) TestTransactions_MonthlyStats() {
	ana := s.register("ana", "ana@x.com", "p@ss1234")
	bob := s.register("bob", "bob@x.com", "p@ss1234")
	salary := s.globalCategory("Salary")
	food := s.globalCategory("Food")

	s.record(ana.ID, salary.ID, 1500, "2024-03-01")
	s.record(ana.ID, food.ID, 200.25, "2024-03-31T23:59:00")
	s.record(ana.ID, food.ID, 50, "2024-02-29")
	s.record(ana.ID, salary.ID, 900, "2024-04-01")
	s.record(bob.ID, salary.ID, 7000, "2024-03-15")

	march, err := s.transactions.MonthlyStats(s.ctx, ana.ID, "2024-03")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "2024-03", march.Month)
	assert.Equal(s.T(), 1500.0, march.MonthlyIncome)
	assert.Equal(s.T(), 200.25, march.MonthlyExpense)
	assert.Equal(s.T(), 1299.75, march.MonthlyBalance)

	s.transactions.now = func() time.Time { return time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC) }
	current, err := s.transactions.MonthlyStats(s.ctx, ana.ID, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "2024-02", current.Month)
	assert.Equal(s.T(), 50.0, current.MonthlyExpense)
	assert.Zero(s.T(), current.MonthlyIncome)

	december, err := s.transactions.MonthlyStats(s.ctx, ana.ID, "2023-12")
	require.NoError(s.T(), err)
	assert.Zero(s.T(), december.MonthlyBalance)

	for _, bad := range []string{"2024-13", "March", "2024-3", "2024-03-01"} {
		_, err := s.transactions.MonthlyStats(s.ctx, ana.ID, bad)
		assert.Equal(s.T(), "month", s.requireCode(err, apperrors.CodeValidation).Param, bad)
	}
}
