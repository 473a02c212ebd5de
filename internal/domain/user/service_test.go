package user

import (
	"testing"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	users map[uuid.UUID]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepository) Create(user *User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockRepository) FindByID(id uuid.UUID) (*User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockRepository) FindByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) Update(user *User) error {
	if _, ok := m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.LastLoginAt = &at
	return nil
}

func (m *mockRepository) Delete(id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, "test-secret", "zenithtrack-test", 1, logger.NewLogger())
}

func TestRegisterDefaults(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	user, err := svc.Register(RegisterInput{
		Name:     "Aditi",
		Email:    "Aditi@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, TypeDeveloper, user.Type)
	assert.Equal(t, "aditi@example.com", user.Email, "email should be lowercased")
	assert.Equal(t, DefaultPreferences(), user.Preferences)
	assert.NotEqual(t, uuid.Nil, user.ID)

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22"))
	assert.NoError(t, err, "stored hash should verify against the password")
}

func TestRegisterRejectsInvalidType(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.Register(RegisterInput{
		Name:     "Aditi",
		Email:    "aditi@example.com",
		Password: "hunter22",
		Type:     UserType("Wizard"),
	})
	assert.ErrorIs(t, err, ErrInvalidUserType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.Register(RegisterInput{Name: "A", Email: "same@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Name: "B", Email: "same@example.com", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginSuccess(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	registered, err := svc.Register(RegisterInput{
		Name:     "Aditi",
		Email:    "aditi@example.com",
		Password: "hunter22",
		Type:     TypeStudent,
	})
	require.NoError(t, err)

	user, token, err := svc.Login("aditi@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginUniformFailure(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.Register(RegisterInput{Name: "A", Email: "a@example.com", Password: "correct-pw"})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, _, err = svc.Login("a@example.com", "wrong-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "correct-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	registered, err := svc.Register(RegisterInput{Name: "Aditi", Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	name := "Aditi S"
	updated, err := svc.UpdateProfile(registered.ID, UpdateInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Aditi S", updated.Name)
	assert.Equal(t, TypeDeveloper, updated.Type, "unset fields stay unchanged")

	badType := UserType("Wizard")
	_, err = svc.UpdateProfile(registered.ID, UpdateInput{Type: &badType})
	assert.ErrorIs(t, err, ErrInvalidUserType)
}

func TestGetProfileNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
