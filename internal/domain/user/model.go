package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType classifies the account for default dashboard tuning.
type UserType string

const (
	TypeStudent   UserType = "Student"
	TypeAthlete   UserType = "Athlete"
	TypeDeveloper UserType = "Developer"
)

// ValidUserTypes lists the accepted account types.
var ValidUserTypes = []UserType{TypeStudent, TypeAthlete, TypeDeveloper}

func (t UserType) Valid() bool {
	for _, v := range ValidUserTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Preferences holds per-user UI and focus settings, stored as JSONB.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	FocusDuration int    `json:"focusDuration"`
}

// DefaultPreferences returns the preferences applied at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "dark",
		Notifications: true,
		FocusDuration: 25,
	}
}

func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = DefaultPreferences()
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan preferences: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, p)
}

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	Email        string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	Type         UserType    `gorm:"size:20;not null;default:'Developer'" json:"type"`
	AvatarURL    string      `gorm:"size:512" json:"avatar_url,omitempty"`
	Preferences  Preferences `gorm:"type:jsonb" json:"preferences"`
	LastLoginAt  *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUserType    = errors.New("invalid user type")
)
