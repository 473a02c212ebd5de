package dto

import (
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/user"
	"github.com/google/uuid"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,not_empty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Type     string `json:"type" validate:"omitempty,oneof=Student Athlete Developer"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,not_empty,max=100"`
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=Student Athlete Developer"`
	AvatarURL   *string          `json:"avatarUrl,omitempty" validate:"omitempty,max=512"`
	Preferences *PreferencesBody `json:"preferences,omitempty"`
}

type PreferencesBody struct {
	Theme         string `json:"theme" validate:"omitempty,oneof=light dark"`
	Notifications bool   `json:"notifications"`
	FocusDuration int    `json:"focusDuration" validate:"omitempty,min=5,max=180"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Type        string          `json:"type"`
	AvatarURL   string          `json:"avatarUrl,omitempty"`
	Preferences PreferencesBody `json:"preferences"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AuthResponse pairs the user with a fresh token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ToUserResponse maps the domain model to its API shape.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Type:      string(u.Type),
		AvatarURL: u.AvatarURL,
		Preferences: PreferencesBody{
			Theme:         u.Preferences.Theme,
			Notifications: u.Preferences.Notifications,
			FocusDuration: u.Preferences.FocusDuration,
		},
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
