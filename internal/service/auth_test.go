package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/estate-listings/api/internal/auth"
	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/repository"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("FindByID not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, name, email, passwordHash)
	}
	return nil, errors.New("create not implemented")
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected bcrypt error: %v", err)
	}

	tests := map[string]struct {
		email       string
		password    string
		repo        repository.UsersRepository
		expectError string
	}{
		"empty credentials": {
			repo:        &mockUsersRepository{},
			expectError: "email and password must not be empty",
		},
		"malformed email": {
			email:       "not-an-email",
			password:    "whatever",
			repo:        &mockUsersRepository{},
			expectError: "invalid credentials",
		},
		"user not found": {
			email:    "john@example.com",
			password: "whatever",
			repo: &mockUsersRepository{
				findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
					return nil, repository.ErrUserNotFound
				},
			},
			expectError: "invalid credentials",
		},
		"password mismatch": {
			email:    "john@example.com",
			password: "wrong",
			repo: &mockUsersRepository{
				findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
					return &entity.User{ID: uuid.New(), Email: email, PasswordHash: string(hashed)}, nil
				},
			},
			expectError: "invalid credentials",
		},
		"success": {
			email:    " John@Example.com ",
			password: "super-secret",
			repo: &mockUsersRepository{
				findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
					if email != "john@example.com" {
						return nil, repository.ErrUserNotFound
					}
					return &entity.User{
						ID:           uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"),
						Name:         "John",
						Email:        email,
						PasswordHash: string(hashed),
					}, nil
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			jwtManager := auth.NewJWTManager("test-secret", 0)
			service := NewAuthService(tt.repo, jwtManager)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)
			if tt.expectError != "" {
				if err == nil || err.Error() != tt.expectError {
					t.Fatalf("expected error %q, got %v", tt.expectError, err)
				}
				if token != "" || user != nil {
					t.Fatalf("expected empty result on error, got %q %+v", token, user)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			claims, err := jwtManager.ParseToken(token)
			if err != nil {
				t.Fatalf("issued token does not parse: %v", err)
			}
			if claims.Subject != user.ID.String() || claims.Name != "John" {
				t.Fatalf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := map[string]struct {
		name        string
		email       string
		password    string
		repo        repository.UsersRepository
		expectField string
		expectError error
	}{
		"missing name": {
			email:       "jane@example.com",
			password:    "password123",
			repo:        &mockUsersRepository{},
			expectField: "name",
		},
		"bad email": {
			name:        "Jane",
			email:       "jane@",
			password:    "password123",
			repo:        &mockUsersRepository{},
			expectField: "email",
		},
		"short password": {
			name:        "Jane",
			email:       "jane@example.com",
			password:    "12345",
			repo:        &mockUsersRepository{},
			expectField: "password",
		},
		"duplicate email": {
			name:     "Jane",
			email:    "john@example.com",
			password: "password123",
			repo: &mockUsersRepository{
				create: func(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
					return nil, repository.ErrEmailDuplicate
				},
			},
			expectError: ErrEmailAlreadyExists,
		},
		"success": {
			name:     " Jane ",
			email:    "Jane@Example.com",
			password: "password123",
			repo: &mockUsersRepository{
				create: func(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
					if name != "Jane" || email != "jane@example.com" {
						return nil, errors.New("input was not normalized")
					}
					if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("password123")) != nil {
						return nil, errors.New("password was not hashed")
					}
					return &entity.User{
						ID:           uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"),
						Name:         name,
						Email:        email,
						PasswordHash: passwordHash,
					}, nil
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			service := NewAuthService(tt.repo, auth.NewJWTManager("register-secret", 0))

			user, err := service.Register(context.Background(), tt.name, tt.email, tt.password)
			if tt.expectField != "" {
				var verr ValidationError
				if !errors.As(err, &verr) || verr.Field != tt.expectField {
					t.Fatalf("expected validation error on %q, got %v", tt.expectField, err)
				}
				return
			}
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user == nil || user.Email != "jane@example.com" {
				t.Fatalf("unexpected user: %+v", user)
			}
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	known := uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	repo := &mockUsersRepository{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
			if id != known {
				return nil, repository.ErrUserNotFound
			}
			return &entity.User{ID: id, Name: "Sara", Email: "sara@example.com"}, nil
		},
	}
	service := NewAuthService(repo, auth.NewJWTManager("secret", 0))

	user, err := service.CurrentUser(context.Background(), known.String())
	if err != nil || user.Name != "Sara" {
		t.Fatalf("unexpected result: %+v, %v", user, err)
	}

	if _, err := service.CurrentUser(context.Background(), uuid.NewString()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown id, got %v", err)
	}
	if _, err := service.CurrentUser(context.Background(), "not-a-uuid"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for malformed subject, got %v", err)
	}
}

func TestAuthService_AccountExists(t *testing.T) {
	known := uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
	dbDown := errors.New("connection refused")
	repo := &mockUsersRepository{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
			switch id {
			case known:
				return &entity.User{ID: id}, nil
			case uuid.Nil:
				return nil, dbDown
			}
			return nil, repository.ErrUserNotFound
		},
	}
	service := NewAuthService(repo, auth.NewJWTManager("secret", 0))

	tests := map[string]struct {
		subject string
		want    bool
		wantErr error
	}{
		"live account":    {subject: known.String(), want: true},
		"deleted account": {subject: uuid.NewString()},
		"foreign subject": {subject: "user-a"},
		"lookup failure":  {subject: uuid.Nil.String(), wantErr: dbDown},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := service.AccountExists(context.Background(), tt.subject)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
