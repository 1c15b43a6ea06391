package app

import (
	"context"
	"errors"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/docstore"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
	"github.com/Rajputmansi7/fitness-store/internal/services/hash"
	"github.com/Rajputmansi7/fitness-store/internal/services/token"
)

var (
	// errNoMatch means the authenticator does not handle this identity
	// and the next one should be tried.
	errNoMatch = errors.New("app: credentials not handled")

	// errBadCredentials is terminal: the identity is handled but the
	// credentials are wrong. It is the same for an unknown email and a
	// wrong password.
	errBadCredentials = errors.New("app: invalid credentials")
)

type loginResult struct {
	admin bool
	user  models.User
	token string
}

// authenticator is one way of turning an email/password pair into an
// authenticated identity. Login tries each in order.
type authenticator interface {
	authenticate(ctx context.Context, email, password string) (loginResult, error)
}

// adminAuthenticator matches the configured administrator credential by
// exact string comparison. It never touches the credential store.
type adminAuthenticator struct {
	creds  AdminCredential
	tokens *token.Service
}

func (a adminAuthenticator) authenticate(ctx context.Context, email, password string) (loginResult, error) {
	if email != a.creds.Email || password != a.creds.Password {
		return loginResult{}, errNoMatch
	}

	tok, err := a.tokens.IssueAdminToken(ctx, email)
	if err != nil {
		return loginResult{}, err
	}
	return loginResult{admin: true, token: tok}, nil
}

// storeAuthenticator authenticates against the credential store with
// bcrypt verification.
type storeAuthenticator struct {
	db     docstore.Service
	hash   *hash.HashService
	tokens *token.Service
}

func (a storeAuthenticator) authenticate(ctx context.Context, email, password string) (loginResult, error) {
	user, err := a.db.GetUserByEmail(ctx, email)
	if errors.Is(err, docstore.ErrNotFound) {
		return loginResult{}, errBadCredentials
	}
	if err != nil {
		return loginResult{}, err
	}

	if !a.hash.CheckPassword(password, user.Password) {
		return loginResult{}, errBadCredentials
	}

	tok, err := a.tokens.IssueUserToken(ctx, user.ID, user.Email, user.Name)
	if err != nil {
		return loginResult{}, err
	}
	return loginResult{user: user, token: tok}, nil
}
