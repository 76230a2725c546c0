// Package accounts implements the credential store behind the token
// handshake: signup and login over persisted users, issuing the signed
// identity tokens the socket layer verifies.
package accounts

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrDuplicateUser is returned when the username or email is taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// User is a persisted account. Password holds the bcrypt hash, never
// the plaintext.
type User struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a gorm-backed user repository.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (creating if needed) the sqlite database at path and
// migrates the user schema.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Create persists a new user. Returns ErrDuplicateUser if the username
// or email is already taken.
func (s *Store) Create(u *User) error {
	var count int64
	if err := s.db.Model(&User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateUser
	}
	return s.db.Create(u).Error
}

// FindByUsernameOrEmail looks a user up by either handle.
func (s *Store) FindByUsernameOrEmail(handle string) (*User, error) {
	var u User
	err := s.db.Where("username = ? OR email = ?", handle, handle).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
