package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/estate-listings/api/internal/auth"
	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/repository"
)

// AuthService coordinates account creation, credential checks and token issuance.
type AuthService struct {
	users repository.UsersRepository
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Please provide name")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, name, normalized, string(hashed))
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Login validates credentials and returns a JWT alongside the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", nil, errors.New("email and password must not be empty")
	}

	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Name)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CurrentUser resolves the account behind an authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, subject string) (*entity.User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// AccountExists reports whether subject still resolves to a stored user.
func (s *AuthService) AccountExists(ctx context.Context, subject string) (bool, error) {
	if _, err := s.CurrentUser(ctx, subject); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
