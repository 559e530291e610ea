package db

import (
	"context"                         // Request-scoped cancellation
	"errors"                          // Error matching
	"expense_tracker/internal/domain" // Importing domain models
	"expense_tracker/internal/utils"  // Password hashing
	"fmt"                             // Error wrapping

	"gorm.io/gorm" // GORM ORM library
)

// UserStore persists user identity records. It does not enforce business
// rules: duplicate registration is checked by the account service.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore returns a UserStore backed by db
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns the user with the exact email or domain.ErrNotFound
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &user, nil
}

// FindByID returns the user with id or domain.ErrNotFound
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, "find user by id")
	}
	return &user, nil
}

// Create hashes rawPassword and persists a new user. The plaintext never
// reaches the database.
func (s *UserStore) Create(ctx context.Context, name, email, rawPassword string) (*domain.User, error) {
	hash, err := utils.HashPassword(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Name: name, Email: email, Password: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// notFound maps gorm's missing-row error to domain.ErrNotFound and wraps the rest
func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
