// Package token provides signed-token issuance and verification.
//
// Tokens are stateless HS256 JWTs carrying the caller's identity and role.
// They expire 12 hours after issuance and there is no refresh mechanism;
// an expired token means the client must authenticate again.
package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("token: invalid token")
	ErrExpiredToken     = errors.New("token: token has expired")
	ErrTokenNotFound    = errors.New("token: token not found")
	ErrInvalidClaims    = errors.New("token: invalid claims")
	ErrTokenNotYetValid = errors.New("token: token not yet valid")
)

// Roles carried by a token. An admin token asserts the configured
// administrator credential and has no stored user behind it, so its
// subject is empty; a user token's subject is the user id.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const defaultIssuer = "fitness-store"

// Claims is the decoded payload of a signed token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Admin reports whether the claims assert the administrator role.
func (c *Claims) Admin() bool {
	return c.Role == RoleAdmin
}

// Service creates and validates signed tokens.
// Create one instance and reuse it throughout the application.
type Service struct {
	secret []byte
	expiry time.Duration
	issuer string
	parser *jwt.Parser
}

// NewService creates a token Service.
//
// Configuration comes from environment variables:
//   - JWT_SECRET: signing secret (required in production; a development
//     default is used when unset)
//   - JWT_ISSUER: token issuer name (optional)
func NewService() *Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "devsecret"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = defaultIssuer
	}

	parser := jwt.NewParser(
		// Only accept HS256 to rule out algorithm confusion.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithIssuer(issuer),
	)

	return &Service{
		secret: []byte(secret),
		expiry: 12 * time.Hour,
		issuer: issuer,
		parser: parser,
	}
}

// IssueUserToken creates a token bound to a stored user's identity.
func (s *Service) IssueUserToken(ctx context.Context, userID, email, name string) (string, error) {
	return s.issue(userID, email, name, RoleUser)
}

// IssueAdminToken creates a token asserting the administrator role.
// Admin is a configured credential, not a stored user, so the token
// carries no subject.
func (s *Service) IssueAdminToken(ctx context.Context, email string) (string, error) {
	return s.issue("", email, "", RoleAdmin)
}

// Parse validates a token string and returns its claims.
func (s *Service) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenNotFound
	}

	claims := &Claims{}
	parsed, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, convertError(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) issue(subject, email, name, role string) (string, error) {
	now := time.Now()

	claims := &Claims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.New().String(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("creating token: %w", err)
	}
	return signed, nil
}

// convertError transforms jwt library errors into this package's errors.
func convertError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %v", ErrTokenNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: token is malformed", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
