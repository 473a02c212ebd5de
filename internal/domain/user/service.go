package user

import (
	"strings"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Type     UserType
}

// UpdateInput carries the mutable profile fields. Nil means unchanged.
type UpdateInput struct {
	Name        *string
	Type        *UserType
	AvatarURL   *string
	Preferences *Preferences
}

type Service interface {
	Register(input RegisterInput) (*User, error)
	Login(email, password string) (*User, string, error)
	GetProfile(id uuid.UUID) (*User, error)
	UpdateProfile(id uuid.UUID, input UpdateInput) (*User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
	jwtIssuer string
	jwtExpiry int
	log       *logger.Logger
}

func NewService(repo Repository, jwtSecret, jwtIssuer string, jwtExpiryHours int, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		jwtExpiry: jwtExpiryHours,
		log:       log,
	}
}

func (s *service) Register(input RegisterInput) (*User, error) {
	if input.Type == "" {
		input.Type = TypeDeveloper
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidUserType
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		Type:         input.Type,
		Preferences:  DefaultPreferences(),
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(user.Type)),
	)

	return user, nil
}

// Login verifies credentials and returns the user with a signed JWT.
// Credential failures always map to ErrInvalidCredentials so the response
// does not reveal whether the email exists.
func (s *service) Login(email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, string(user.Type), s.jwtSecret, s.jwtIssuer, s.jwtExpiry)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(user.ID, now); err != nil {
		// Login still succeeds; the timestamp is informational.
		s.log.Warn("failed to record last login", zap.Error(err))
	}
	user.LastLoginAt = &now

	return user, token, nil
}

func (s *service) GetProfile(id uuid.UUID) (*User, error) {
	return s.repo.FindByID(id)
}

func (s *service) UpdateProfile(id uuid.UUID, input UpdateInput) (*User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, ErrInvalidUserType
		}
		user.Type = *input.Type
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
