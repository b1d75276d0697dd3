package service

import (
	"context"
	"errors"

	"real-balance/internal/dto"
	"real-balance/internal/models"
	"real-balance/internal/repository"

	"go.uber.org/zap"
)

// DefaultCategories are the shared categories every user sees.
var DefaultCategories = []struct {
	Name string
	Type models.EntryType
}{
	{"Salary", models.EntryTypeIncome},
	{"Investment", models.EntryTypeIncome},
	{"Other", models.EntryTypeIncome},
	{"Food", models.EntryTypeExpense},
	{"Transport", models.EntryTypeExpense},
	{"Rent", models.EntryTypeExpense},
	{"Leisure", models.EntryTypeExpense},
	{"Health", models.EntryTypeExpense},
}

type CategoryService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewCategoryService(store *repository.Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger,
	}
}

// List returns the caller's own categories plus the global ones. An empty
// typeFilter means every type; a type no category can have matches nothing.
func (s *CategoryService) List(ctx context.Context, userID int64, typeFilter string) ([]*models.Category, error) {
	var filter *models.EntryType
	if typeFilter != "" {
		entryType := models.EntryType(typeFilter)
		if !entryType.Valid() {
			return []*models.Category{}, nil
		}
		filter = &entryType
	}

	categories, err := s.store.Categories().ListVisible(ctx, userID, filter)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

// Create adds a category owned by userID.
func (s *CategoryService) Create(ctx context.Context, userID int64, req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := cleanText(req.Name)
	if name == "" {
		return nil, validationError("name", "name is required")
	}
	entryType := models.EntryType(req.Type)
	if !entryType.Valid() {
		return nil, validationError("type", "type must be income or expense")
	}

	category := &models.Category{
		Name:  name,
		Type:  entryType,
		Owner: models.OwnedBy{UserID: userID},
	}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, storeError("create category", err)
	}
	return category, nil
}

// Delete removes one of the caller's categories. Global categories, other
// users' categories and missing ids all answer ErrCategoryMissing. A category
// still referenced by transactions is ErrCategoryInUse.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	err := s.store.WithTx(ctx, func(repos repository.Repositories) error {
		category, err := repos.Categories.GetVisible(ctx, userID, id)
		if err != nil {
			return err
		}
		if _, owned := category.Owner.(models.OwnedBy); !owned {
			return ErrCategoryMissing
		}

		inUse, err := repos.Transactions.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}
		return repos.Categories.DeleteOwned(ctx, userID, id)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrCategoryMissing
	case errors.Is(err, repository.ErrForeignKey):
		return ErrCategoryInUse
	default:
		return storeError("delete category", err)
	}
}

// SeedDefaults inserts DefaultCategories when no global category exists yet
// and reports how many were created.
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	err := s.store.WithTx(ctx, func(repos repository.Repositories) error {
		count, err := repos.Categories.CountGlobal(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, def := range DefaultCategories {
			category := &models.Category{Name: def.Name, Type: def.Type, Owner: models.Global{}}
			if err := repos.Categories.Create(ctx, category); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, storeError("seed categories", err)
	}

	if created > 0 {
		s.logger.Info("Seeded default categories", zap.Int("count", created))
	}
	return created, nil
}
