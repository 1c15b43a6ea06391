package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/docstore"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
	"github.com/Rajputmansi7/fitness-store/internal/services/sentry"
)

func (a *App) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrInvalidBody, nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if details := validateSignup(req); details != nil {
		writeError(c, ErrValidation, details)
		return
	}

	hashedPassword, err := a.hash.HashPassword(req.Password)
	if err != nil {
		a.toSentry(c, "signup", "bcrypt", sentry.LevelError, err)
		writeError(c, ErrHashPassword, nil)
		return
	}

	newUser := models.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	act := models.NewActivity{
		Type:    models.ActivitySignup,
		Email:   req.Email,
		Details: map[string]any{"name": req.Name},
	}

	user, err := a.db.CreateUser(c.Request.Context(), newUser, act)
	if err != nil {
		if errors.Is(err, docstore.ErrDuplicatedEntry) {
			writeError(c, ErrEmailExists, nil)
			return
		}
		a.toSentry(c, "signup", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	tok, err := a.tokens.IssueUserToken(c.Request.Context(), user.ID, user.Email, user.Name)
	if err != nil {
		a.toSentry(c, "signup", "token", sentry.LevelError, err)
		writeError(c, ErrGenerateToken, nil)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		User:    &AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
		Token:   tok,
	})
}

func (a *App) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrInvalidBody, nil)
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if details := validateLogin(req); details != nil {
		writeError(c, ErrValidation, details)
		return
	}

	for _, auth := range a.authenticators {
		result, err := auth.authenticate(c.Request.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, errNoMatch):
			continue
		case errors.Is(err, errBadCredentials):
			writeError(c, ErrInvalidCredentials, nil)
			return
		case err != nil:
			a.toSentry(c, "login", "authenticate", sentry.LevelError, err)
			writeError(c, ErrProcessLogin, nil)
			return
		}

		a.respondLogin(c, req.Email, result)
		return
	}

	writeError(c, ErrInvalidCredentials, nil)
}

func (a *App) respondLogin(c *gin.Context, email string, result loginResult) {
	actType := models.ActivityLogin
	if result.admin {
		actType = models.ActivityAdminLogin
	}

	act := models.NewActivity{Type: actType, Email: email, Details: map[string]any{}}
	if _, err := a.db.AppendActivity(c.Request.Context(), act); err != nil {
		a.toSentry(c, "login", "activity", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	if result.admin {
		c.JSON(http.StatusOK, AuthResponse{
			Success: true,
			Admin:   true,
			Email:   email,
			Token:   result.token,
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		User:    &AuthUser{ID: result.user.ID, Name: result.user.Name, Email: result.user.Email},
		Token:   result.token,
	})
}
