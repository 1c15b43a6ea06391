// Package app provides the HTTP handlers for the fitness store service.
package app

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/docstore"
	"github.com/Rajputmansi7/fitness-store/internal/services/hash"
	"github.com/Rajputmansi7/fitness-store/internal/services/sentry"
	"github.com/Rajputmansi7/fitness-store/internal/services/token"
)

// AdminCredential is the externally configured administrator login. Admin
// is not a stored user; it authenticates by exact string match.
type AdminCredential struct {
	Email    string
	Password string
}

// AdminCredentialFromEnv reads ADMIN_EMAIL and ADMIN_PASSWORD with
// development defaults.
func AdminCredentialFromEnv() AdminCredential {
	cred := AdminCredential{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if cred.Email == "" {
		cred.Email = "admin@fitnessmvp.com"
	}
	if cred.Password == "" {
		cred.Password = "admin123"
	}
	return cred
}

type App struct {
	db             docstore.Service
	hash           *hash.HashService
	tokens         *token.Service
	sentry         *sentry.SentryService
	authenticators []authenticator
}

func NewApp(
	db docstore.Service,
	hashService *hash.HashService,
	tokens *token.Service,
	sentryService *sentry.SentryService,
	admin AdminCredential,
) *App {
	return &App{
		db:     db,
		hash:   hashService,
		tokens: tokens,
		sentry: sentryService,
		authenticators: []authenticator{
			adminAuthenticator{creds: admin, tokens: tokens},
			storeAuthenticator{db: db, hash: hashService, tokens: tokens},
		},
	}
}

func (a *App) toSentry(c *gin.Context, handler, errType string, level sentry.Level, err error) {
	a.sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", handler)
		scope.SetExtra("error_type", errType)
		scope.SetLevel(level)
		if reqID := c.GetHeader("X-Request-ID"); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		a.sentry.CaptureException(err)
	})
}
