package dto

import "real-balance/internal/models"

// RegisterRequest is the sign-up payload. The optional profile fields arrive
// camelCased from the web client.
type RegisterRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Contact       *string `json:"contact"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"maritalStatus"`
	IDNumber      *string `json:"idNumber"`
	Address       *string `json:"address"`
	Photo         *string `json:"photo"`
	Password      string  `json:"password"`
}

// LoginRequest carries the login identifier, which may be a username or an email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest is a partial update: nil fields are left untouched.
type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Username      *string `json:"username"`
	Contact       *string `json:"contact"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"maritalStatus"`
	IDNumber      *string `json:"idNumber"`
	Address       *string `json:"address"`
	Photo         *string `json:"photo"`
	Password      *string `json:"password"`
}

// UpdatePreferencesRequest is partial like UpdateProfileRequest.
type UpdatePreferencesRequest struct {
	Currency *string `json:"currency"`
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
}

type UserResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Contact       *string `json:"contact"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
	IDNumber      *string `json:"id_number"`
	Address       *string `json:"address"`
	Photo         *string `json:"photo"`
	Currency      string  `json:"currency"`
	Language      string  `json:"language"`
	Theme         string  `json:"theme"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// NewUserResponse projects a user onto its public shape. The password hash
// has no field here.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Username:      user.Username,
		Contact:       user.Contact,
		Gender:        user.Gender,
		MaritalStatus: user.MaritalStatus,
		IDNumber:      user.IDNumber,
		Address:       user.Address,
		Photo:         user.Photo,
		Currency:      user.Preferences.Currency,
		Language:      user.Preferences.Language,
		Theme:         user.Preferences.Theme,
	}
}
