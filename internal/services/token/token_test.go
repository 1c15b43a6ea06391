package token

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

const (
	testIssuer = "test-issuer"
	testSecret = "test-secret"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_ISSUER", testIssuer)
	_ = os.Setenv("JWT_SECRET", testSecret)

	code := m.Run()
	os.Exit(code)
}

func TestNewService(t *testing.T) {
	srv := NewService()
	if srv == nil {
		t.Fatal("NewService() returned nil")
	}
	if srv.issuer != testIssuer {
		t.Fatalf("expected issuer %q, got %q", testIssuer, srv.issuer)
	}
	if srv.expiry != 12*time.Hour {
		t.Fatalf("expected 12h expiry, got %v", srv.expiry)
	}
}

func TestIssueUserToken(t *testing.T) {
	srv := NewService()
	tok, err := srv.IssueUserToken(context.Background(), "user-123", "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("IssueUserToken returned error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := srv.Parse(context.Background(), tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("expected subject user-123, got %q", claims.Subject)
	}
	if claims.Email != "jane@example.com" {
		t.Fatalf("expected email jane@example.com, got %q", claims.Email)
	}
	if claims.Name != "Jane" {
		t.Fatalf("expected name Jane, got %q", claims.Name)
	}
	if claims.Role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, claims.Role)
	}
	if claims.Admin() {
		t.Fatal("user token must not assert admin")
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestIssueAdminToken(t *testing.T) {
	srv := NewService()
	tok, err := srv.IssueAdminToken(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("IssueAdminToken returned error: %v", err)
	}

	claims, err := srv.Parse(context.Background(), tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "" {
		t.Fatalf("admin token must carry no subject, got %q", claims.Subject)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("expected email admin@example.com, got %q", claims.Email)
	}
	if !claims.Admin() {
		t.Fatal("expected admin role")
	}
}

func TestParse(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		srv := NewService()
		_, err := srv.Parse(context.Background(), "")
		if !errors.Is(err, ErrTokenNotFound) {
			t.Fatalf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		srv := NewService()
		_, err := srv.Parse(context.Background(), "not-a-jwt")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		srv := NewService()
		srv.expiry = -time.Minute

		tok, err := srv.IssueUserToken(context.Background(), "user-123", "jane@example.com", "Jane")
		if err != nil {
			t.Fatalf("IssueUserToken returned error: %v", err)
		}

		_, err = srv.Parse(context.Background(), tok)
		if !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		srv := NewService()
		other := NewService()
		other.secret = []byte("some-other-secret")

		tok, err := other.IssueUserToken(context.Background(), "user-123", "jane@example.com", "Jane")
		if err != nil {
			t.Fatalf("IssueUserToken returned error: %v", err)
		}

		_, err = srv.Parse(context.Background(), tok)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}
