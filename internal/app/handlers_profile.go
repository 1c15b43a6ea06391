package app

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/docstore"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/middleware"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
	"github.com/Rajputmansi7/fitness-store/internal/services/fitness"
	"github.com/Rajputmansi7/fitness-store/internal/services/sentry"
)

// HandleSaveProfile validates the submitted body metrics, recomputes BMI
// and fitness age from them, and persists name, profile and (optionally)
// a new email as one record update. When the email changes the response
// carries a fresh token; the old one is bound to the stale email and the
// caller is expected to discard it.
func (a *App) HandleSaveProfile(c *gin.Context) {
	claims, err := middleware.Claims(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrInvalidBody, nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if details := validateProfile(req); details != nil {
		writeError(c, ErrValidation, details)
		return
	}

	user, err := a.db.GetUserByID(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			writeError(c, ErrUserNotFound, nil)
			return
		}
		a.toSentry(c, "profile", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	// Derived values always come from the submitted metrics, never from
	// the stored profile.
	bmi := fitness.BMI(req.WeightKg, req.HeightCm)
	fitnessAge := fitness.FitnessAge(bmi, req.Age)

	profile := models.Profile{
		Name:       req.Name,
		Gender:     req.Gender,
		Age:        req.Age,
		HeightCm:   req.HeightCm,
		WeightKg:   req.WeightKg,
		BMI:        bmi,
		FitnessAge: fitnessAge,
		UpdatedAt:  time.Now().UTC(),
	}

	actorEmail := user.Email
	if req.Email != "" {
		actorEmail = req.Email
	}
	act := models.NewActivity{
		Type:    models.ActivityProfileUpdate,
		Email:   actorEmail,
		Details: map[string]any{"bmi": bmi, "fitness_age": fitnessAge},
	}

	updated, emailChanged, err := a.db.SaveProfile(c.Request.Context(), user.ID, req.Name, req.Email, profile, act)
	if err != nil {
		switch {
		case errors.Is(err, docstore.ErrDuplicatedEntry):
			writeError(c, ErrEmailInUse, nil)
		case errors.Is(err, docstore.ErrNotFound):
			writeError(c, ErrUserNotFound, nil)
		default:
			a.toSentry(c, "profile", "store", sentry.LevelError, err)
			writeError(c, ErrStore, nil)
		}
		return
	}

	response := ProfileResponse{Success: true, Profile: *updated.Profile}

	if emailChanged {
		tok, err := a.tokens.IssueUserToken(c.Request.Context(), updated.ID, updated.Email, updated.Name)
		if err != nil {
			a.toSentry(c, "profile", "token", sentry.LevelError, err)
			writeError(c, ErrGenerateToken, nil)
			return
		}
		response.Token = tok
	}

	c.JSON(http.StatusOK, response)
}
