package services

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials is returned when the username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles customer accounts and the administrator login.
type AuthService struct {
	userRepo repositories.UserRepository
	admin    config.AdminCredentials
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, admin config.AdminCredentials) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		admin:    admin,
	}
}

// RegisterUser hashes the password and stores a new customer account.
func (s *AuthService) RegisterUser(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	// Check if username already exists
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, fmt.Errorf("username '%s': %w", username, ErrUsernameTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hashedPassword)}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, fmt.Errorf("username '%s': %w", username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser checks a customer's credentials. Unknown users and wrong
// passwords give the same error.
func (s *AuthService) LoginUser(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginAdmin compares the pair with the configured administrator
// credentials. The comparison is plaintext.
func (s *AuthService) LoginAdmin(username, password string) error {
	if s.admin.Username == "" || username != s.admin.Username || password != s.admin.Password {
		return ErrInvalidCredentials
	}
	return nil
}
