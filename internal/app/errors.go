package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Contract-visible error strings are the exact messages the presentation
// layer already consumes; internal failures use code-style identifiers.
const (
	ErrInvalidBody        = "Invalid request body"
	ErrValidation         = "Validation failed"
	ErrEmailExists        = "Email already exists"
	ErrEmailInUse         = "Email already in use"
	ErrEmailUsed          = "Email already used"
	ErrInvalidCredentials = "Invalid credentials"
	ErrUserNotFound       = "User not found"
	ErrAdminUserNotFound  = "user not found"
	ErrNotFound           = "not found"
	ErrEmptyCart          = "Cart is empty"
	ErrUnknownProduct     = "Unknown product in cart"
	ErrInvalidQuantity    = "Invalid quantity"
	ErrUnauthorized       = "unauthorized"
	ErrHashPassword       = "internal_hash_error"
	ErrGenerateToken      = "internal_generate_token_error"
	ErrStore              = "internal_storage_error"
	ErrProcessLogin       = "internal_login_error"
)

var errorStatusMap = map[string]int{
	ErrInvalidBody:        http.StatusBadRequest,
	ErrValidation:         http.StatusBadRequest,
	ErrEmailExists:        http.StatusConflict,
	ErrEmailInUse:         http.StatusConflict,
	ErrEmailUsed:          http.StatusConflict,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrUserNotFound:       http.StatusNotFound,
	ErrAdminUserNotFound:  http.StatusNotFound,
	ErrNotFound:           http.StatusNotFound,
	ErrEmptyCart:          http.StatusBadRequest,
	ErrUnknownProduct:     http.StatusBadRequest,
	ErrInvalidQuantity:    http.StatusBadRequest,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrHashPassword:       http.StatusInternalServerError,
	ErrGenerateToken:      http.StatusInternalServerError,
	ErrStore:              http.StatusInternalServerError,
	ErrProcessLogin:       http.StatusInternalServerError,
}

func statusForError(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, code string, details map[string]string) {
	c.JSON(statusForError(code), ErrorResponse{Error: code, Details: details})
}
