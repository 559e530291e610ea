package service

import (
	"context"                         // Request-scoped cancellation
	"errors"                          // Error matching
	"expense_tracker/internal/domain" // Domain models and errors
	"expense_tracker/internal/utils"  // Credential verification
	"fmt"                             // Error wrapping
	"strings"                         // Input trimming

	"github.com/sirupsen/logrus" // Logging library
)

// UserRepository is the credential store used by AccountService
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, name, email, rawPassword string) (*domain.User, error)
}

// TokenIssuer mints bearer tokens for a user id
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthResult is returned by a successful register or login
type AuthResult struct {
	User  *domain.User
	Token string
}

// AccountService implements registration and login
type AccountService struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAccountService composes a credential store with a token issuer
func NewAccountService(users UserRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// Password length bounds at registration. bcrypt refuses input past 72 bytes.
const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

// Register creates a user and returns it with a fresh token. An email that is
// already registered yields domain.ErrAlreadyExists and leaves the existing
// record untouched.
func (s *AccountService) Register(ctx context.Context, name, email, rawPassword string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	if err := validateRegistration(name, email, rawPassword); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.users.Create(ctx, name, email, rawPassword)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err // lost a race with a concurrent registration
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User registered")
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks rawPassword against the stored credential and mints a new
// token. Earlier tokens for the same user are neither reused nor revoked.
func (s *AccountService) Login(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Message: "email is required"}
	}
	if rawPassword == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "password is required"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !utils.CheckPassword(rawPassword, user.Password) {
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Warn("Login with invalid password")
		return nil, domain.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User logged in")
	return &AuthResult{User: user, Token: token}, nil
}

// Profile returns the user behind a verified identity
func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

func validateRegistration(name, email, password string) error {
	if name == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if !validEmail(email) {
		return &domain.ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if len(password) < minPasswordLength {
		return &domain.ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}
	if len(password) > maxPasswordLength {
		return &domain.ValidationError{Field: "password", Message: fmt.Sprintf("password must be at most %d bytes", maxPasswordLength)}
	}
	return nil
}

// validEmail accepts exactly one '@' with text on both sides and no spaces
func validEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	local, host, ok := strings.Cut(email, "@")
	return ok && local != "" && host != "" && !strings.Contains(host, "@")
}
