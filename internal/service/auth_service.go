package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"real-balance/internal/dto"
	"real-balance/internal/models"
	"real-balance/internal/repository"
	"real-balance/pkg/apperrors"
	"real-balance/pkg/auth"

	"go.uber.org/zap"
)

// AuthService owns the account lifecycle: registration, login, profile
// changes and account removal. It also resolves bearer tokens to users.
type AuthService struct {
	store      *repository.Store
	hasher     *auth.PasswordHasher
	jwtManager *auth.JWTManager
	logger     *zap.Logger
	now        func() time.Time
}

func NewAuthService(store *repository.Store, hasher *auth.PasswordHasher, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      store,
		hasher:     hasher,
		jwtManager: jwtManager,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	username := cleanText(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" {
		return nil, validationError("username", "username is required")
	}
	if email == "" {
		return nil, validationError("email", "email is required")
	}
	name := cleanText(req.Name)
	if name == "" {
		name = username
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		Name:          name,
		Email:         email,
		Username:      username,
		Contact:       cleanOptional(req.Contact),
		Gender:        cleanOptional(req.Gender),
		MaritalStatus: cleanOptional(req.MaritalStatus),
		IDNumber:      cleanOptional(req.IDNumber),
		Address:       cleanOptional(req.Address),
		Photo:         cleanOptional(req.Photo),
		PasswordHash:  hash,
		Preferences:   models.DefaultPreferences(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// The pre-check gives a clean answer in the common case; the UNIQUE
	// constraints still catch a concurrent registration that slips past it.
	err = s.store.WithTx(ctx, func(repos repository.Repositories) error {
		if err := checkAvailable(ctx, repos.Users, user.Email, user.Username, 0); err != nil {
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, storeError("register user", err)
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login answers the same ErrInvalidCredentials for an unknown identifier and
// for a wrong password.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := cleanText(req.Username)
	if identifier == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.Users().FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("find user", err)
	}

	if !s.hasher.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.logger.Warn("Login rejected", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// UpdateProfile applies the supplied fields and returns a fresh token, since
// the old one may carry a stale username. The old token stays valid until it expires.
func (s *AuthService) UpdateProfile(ctx context.Context, current *models.User, req *dto.UpdateProfileRequest) (*dto.AuthResponse, error) {
	updated := *current

	if req.Name != nil {
		if updated.Name = cleanText(*req.Name); updated.Name == "" {
			return nil, validationError("name", "name must not be blank")
		}
	}
	if req.Email != nil {
		if updated.Email = normalizeEmail(*req.Email); updated.Email == "" {
			return nil, validationError("email", "email must not be blank")
		}
	}
	if req.Username != nil {
		if updated.Username = cleanText(*req.Username); updated.Username == "" {
			return nil, validationError("username", "username must not be blank")
		}
	}
	if req.Contact != nil {
		updated.Contact = cleanOptional(req.Contact)
	}
	if req.Gender != nil {
		updated.Gender = cleanOptional(req.Gender)
	}
	if req.MaritalStatus != nil {
		updated.MaritalStatus = cleanOptional(req.MaritalStatus)
	}
	if req.IDNumber != nil {
		updated.IDNumber = cleanOptional(req.IDNumber)
	}
	if req.Address != nil {
		updated.Address = cleanOptional(req.Address)
	}
	if req.Photo != nil {
		updated.Photo = cleanOptional(req.Photo)
	}
	// An empty password means "keep the current one".
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}
	updated.UpdatedAt = s.now()

	err := s.store.WithTx(ctx, func(repos repository.Repositories) error {
		var email, username string
		if updated.Email != current.Email {
			email = updated.Email
		}
		if updated.Username != current.Username {
			username = updated.Username
		}
		if err := checkAvailable(ctx, repos.Users, email, username, current.ID); err != nil {
			return err
		}
		return repos.Users.Update(ctx, &updated)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, storeError("update user", err)
	}

	s.logger.Info("Profile updated", zap.Int64("user_id", updated.ID))
	return s.issue(&updated)
}

// UpdatePreferences changes the display settings. Currency is a three-letter
// code stored uppercased; theme is light, dark or system.
func (s *AuthService) UpdatePreferences(ctx context.Context, current *models.User, req *dto.UpdatePreferencesRequest) (*models.User, error) {
	updated := *current

	if req.Currency != nil {
		currency := strings.ToUpper(cleanText(*req.Currency))
		if !isCurrencyCode(currency) {
			return nil, validationError("currency", "currency must be a three-letter code")
		}
		updated.Preferences.Currency = currency
	}
	if req.Language != nil {
		if updated.Preferences.Language = cleanText(*req.Language); updated.Preferences.Language == "" {
			return nil, validationError("language", "language must not be blank")
		}
	}
	if req.Theme != nil {
		theme := strings.ToLower(cleanText(*req.Theme))
		if _, ok := themes[theme]; !ok {
			return nil, validationError("theme", "theme must be light, dark or system")
		}
		updated.Preferences.Theme = theme
	}
	updated.UpdatedAt = s.now()

	if err := s.store.Users().Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, storeError("update preferences", err)
	}
	return &updated, nil
}

var themes = map[string]struct{}{"light": {}, "dark": {}, "system": {}}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// DeleteAccount removes the user's transactions, goals and categories, then
// the user, all in one transaction.
func (s *AuthService) DeleteAccount(ctx context.Context, user *models.User) error {
	var removedTx, removedGoals, removedCategories int64
	err := s.store.WithTx(ctx, func(repos repository.Repositories) error {
		var err error
		if removedTx, err = repos.Transactions.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		if removedGoals, err = repos.Goals.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		if removedCategories, err = repos.Categories.DeleteByOwner(ctx, user.ID); err != nil {
			return err
		}
		return repos.Users.Delete(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnauthenticated
		}
		return storeError("delete account", err)
	}

	s.logger.Info("Account deleted",
		zap.Int64("user_id", user.ID),
		zap.Int64("transactions", removedTx),
		zap.Int64("goals", removedGoals),
		zap.Int64("categories", removedCategories),
	)
	return nil
}

// Authenticate resolves a bearer token to a live user. Every failure,
// including a token for a since-deleted user, is ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnauthenticated, "invalid or expired token", err)
	}

	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeUnauthenticated, "user no longer exists", err)
		}
		return nil, storeError("load token user", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "internal server error", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:      dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.HashPassword(password)
	switch {
	case errors.Is(err, auth.ErrEmptyPassword):
		return "", validationError("password", "password is required")
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "", validationError("password", "password must be at most 72 bytes")
	case err != nil:
		return "", apperrors.Wrap(apperrors.CodeInternal, "internal server error", err)
	}
	return hash, nil
}

// checkAvailable rejects an email or username already held by a user other
// than exceptID. Empty values are skipped.
func checkAvailable(ctx context.Context, users *repository.UserRepository, email, username string, exceptID int64) error {
	if email != "" {
		taken, err := users.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return duplicateCredential("email", nil)
		}
	}
	if username != "" {
		taken, err := users.UsernameTaken(ctx, username, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return duplicateCredential("username", nil)
		}
	}
	return nil
}
