package app

import (
	"net/mail"
	"strings"
)

const (
	minNameLength     = 2
	minPasswordLength = 6

	minAge    = 10
	maxAge    = 120
	minHeight = 50
	maxHeight = 260
	minWeight = 20
	maxWeight = 500
)

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validateSignup(req SignupRequest) map[string]string {
	details := make(map[string]string)

	if len(strings.TrimSpace(req.Name)) < minNameLength {
		details["name"] = "name_too_short"
	}
	if !validEmail(req.Email) {
		details["email"] = "invalid_email"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "password_too_short"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

func validateLogin(req LoginRequest) map[string]string {
	details := make(map[string]string)

	if !validEmail(req.Email) {
		details["email"] = "invalid_email"
	}
	if req.Password == "" {
		details["password"] = "password_required"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

func validateProfile(req ProfileRequest) map[string]string {
	details := make(map[string]string)

	if len(strings.TrimSpace(req.Name)) < minNameLength {
		details["name"] = "name_too_short"
	}
	if !req.Gender.Valid() {
		details["gender"] = "invalid_gender"
	}
	if req.Age < minAge || req.Age > maxAge {
		details["age"] = "age_out_of_range"
	}
	if req.HeightCm < minHeight || req.HeightCm > maxHeight {
		details["heightCm"] = "height_out_of_range"
	}
	if req.WeightKg < minWeight || req.WeightKg > maxWeight {
		details["weightKg"] = "weight_out_of_range"
	}
	if req.Email != "" && !validEmail(req.Email) {
		details["email"] = "invalid_email"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// validateUpdateUser checks the admin partial update; empty fields mean
// "leave unchanged" and are not validated.
func validateUpdateUser(req UpdateUserRequest) map[string]string {
	details := make(map[string]string)

	if req.Name != "" && len(strings.TrimSpace(req.Name)) < minNameLength {
		details["name"] = "name_too_short"
	}
	if req.Email != "" && !validEmail(req.Email) {
		details["email"] = "invalid_email"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
