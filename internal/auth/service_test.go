package auth

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cinebook/internal/shared/config"
	"cinebook/internal/users"
	"cinebook/pkg/logger"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&users.User{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	cfg := config.Load()
	cfg.JWT.Secret = "test-secret"

	return NewService(NewRepository(db), cfg, logger.GetDefault())
}

func TestRegister(t *testing.T) {
	t.Run("creates user and returns tokens", func(t *testing.T) {
		svc := newTestService(t)

		resp, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice",
			Email:    "Alice@Example.com",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if resp.User.Username != "alice" {
			t.Fatalf("expected username alice, got %q", resp.User.Username)
		}
		if resp.User.Email != "alice@example.com" {
			t.Fatalf("expected lowercased email, got %q", resp.User.Email)
		}
		if resp.User.Role != string(users.RoleUser) {
			t.Fatalf("expected default USER role, got %q", resp.User.Role)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Fatal("expected token pair to be issued")
		}
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		svc := newTestService(t)

		if _, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "password123",
		}); err != nil {
			t.Fatalf("setup registration failed: %v", err)
		}

		_, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice", Email: "other@example.com", Password: "password456",
		})
		if !errors.Is(err, ErrUserAlreadyExists) {
			t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
		}
	})

	t.Run("ignores invalid role escalation", func(t *testing.T) {
		svc := newTestService(t)

		resp, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "bob", Email: "bob@example.com", Password: "password123", Role: "superuser",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.User.Role != string(users.RoleUser) {
			t.Fatalf("expected USER role for unknown role string, got %q", resp.User.Role)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("authenticates with correct password", func(t *testing.T) {
		svc := newTestService(t)

		if _, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "password123",
		}); err != nil {
			t.Fatalf("setup registration failed: %v", err)
		}

		resp, err := svc.Login(context.Background(), &LoginRequest{
			Username: "alice", Password: "password123",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.AccessToken == "" {
			t.Fatal("expected access token")
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		svc := newTestService(t)

		if _, err := svc.Register(context.Background(), &RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "password123",
		}); err != nil {
			t.Fatalf("setup registration failed: %v", err)
		}

		_, err := svc.Login(context.Background(), &LoginRequest{
			Username: "alice", Password: "wrong-password",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username reports same error as wrong password", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Login(context.Background(), &LoginRequest{
			Username: "nobody", Password: "password123",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice", Email: "a@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("setup registration failed: %v", err)
	}

	t.Run("accepts issued access token", func(t *testing.T) {
		claims, err := svc.ValidateToken(resp.AccessToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if claims.Type != "access" {
			t.Fatalf("expected access token type, got %q", claims.Type)
		}
		if claims.Username != "alice" {
			t.Fatalf("expected username claim alice, got %q", claims.Username)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice", Email: "a@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("setup registration failed: %v", err)
	}

	t.Run("issues new pair from refresh token", func(t *testing.T) {
		pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Fatal("expected new token pair")
		}
	})

	t.Run("rejects access token used as refresh", func(t *testing.T) {
		if _, err := svc.RefreshToken(context.Background(), resp.AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice", Email: "a@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("setup registration failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "newpassword456"}); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}
