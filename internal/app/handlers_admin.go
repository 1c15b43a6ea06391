package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/docstore"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/middleware"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
	"github.com/Rajputmansi7/fitness-store/internal/services/sentry"
)

// Admin role enforcement lives in middleware.RequireAdmin on the route
// group; these handlers assume it already ran.

func (a *App) HandleListUsers(c *gin.Context) {
	users, err := a.db.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		a.toSentry(c, "admin_list_users", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	response := make([]AdminUser, 0, len(users))
	for _, u := range users {
		response = append(response, AdminUser{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Profile: u.Profile,
		})
	}

	c.JSON(http.StatusOK, response)
}

func (a *App) HandleUpdateUser(c *gin.Context) {
	claims, err := middleware.Claims(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrInvalidBody, nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if details := validateUpdateUser(req); details != nil {
		writeError(c, ErrValidation, details)
		return
	}

	userID := c.Param("id")
	act := models.NewActivity{
		Type:    models.ActivityAdminUpdateUser,
		Email:   claims.Email,
		Details: map[string]any{"id": userID, "name": req.Name, "email": req.Email},
	}

	user, err := a.db.UpdateUser(c.Request.Context(), userID, req.Name, req.Email, act)
	if err != nil {
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			writeError(c, ErrAdminUserNotFound, nil)
		case errors.Is(err, docstore.ErrDuplicatedEntry):
			writeError(c, ErrEmailUsed, nil)
		default:
			a.toSentry(c, "admin_update_user", "store", sentry.LevelError, err)
			writeError(c, ErrStore, nil)
		}
		return
	}

	c.JSON(http.StatusOK, UpdateUserResponse{
		Success: true,
		User:    AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func (a *App) HandleDeleteUser(c *gin.Context) {
	claims, err := middleware.Claims(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	userID := c.Param("id")
	act := models.NewActivity{
		Type:    models.ActivityAdminDeleteUser,
		Email:   claims.Email,
		Details: map[string]any{"id": userID},
	}

	removed, err := a.db.DeleteUser(c.Request.Context(), userID, act)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			writeError(c, ErrNotFound, nil)
			return
		}
		a.toSentry(c, "admin_delete_user", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	c.JSON(http.StatusOK, DeleteUserResponse{Success: true, Removed: removed.Public()})
}

func (a *App) HandleListActivities(c *gin.Context) {
	acts, err := a.db.SearchActivities(c.Request.Context(), c.Query("q"))
	if err != nil {
		a.toSentry(c, "admin_activities", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	c.JSON(http.StatusOK, acts)
}

// HandleExportActivities returns the full unfiltered log as a download,
// in append order.
func (a *App) HandleExportActivities(c *gin.Context) {
	acts, err := a.db.ListActivities(c.Request.Context())
	if err != nil {
		a.toSentry(c, "admin_activities_export", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="activities.json"`)
	c.JSON(http.StatusOK, acts)
}
