// Package models defines data models for the fitness store service.
package models

import "time"

// Gender enumerates the accepted profile gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the enumerated gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Profile holds the body metrics a user submitted plus the derived values.
// It is recomputed as a whole on every save, never patched field by field.
type Profile struct {
	Name       string    `json:"name"`
	Gender     Gender    `json:"gender"`
	Age        int       `json:"age"`
	HeightCm   float64   `json:"heightCm"`
	WeightKg   float64   `json:"weightKg"`
	BMI        float64   `json:"bmi"`
	FitnessAge int       `json:"fitness_age"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// User represents a stored user record. The password hash is part of the
// persisted document but must never leave the service; handlers respond
// with PublicUser instead.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  []byte    `json:"password"`
	Profile   *Profile  `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the credential material from a user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the externally visible shape of a user record.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Profile   *Profile  `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password []byte `json:"-"`
}

// Product is a catalog entry. The catalog is owned by an external seed
// collaborator; this service only reads it.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company string  `json:"company"`
	Type    string  `json:"type"`
	Price   float64 `json:"price"`
	Weight  string  `json:"weight"`
	Img     string  `json:"img"`
}

// CartLine references a product and a quantity for the duration of a
// billing request. It is never persisted.
type CartLine struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// BillLine is the per-line breakdown of a priced cart.
type BillLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Company   string  `json:"company"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"lineTotal"`
}

// Bill is the result of pricing a cart. It is returned to the caller and
// never stored; only a summarized activity record is kept.
type Bill struct {
	Subtotal float64    `json:"subtotal"`
	Shipping float64    `json:"shipping"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
	Details  []BillLine `json:"details"`
}

// Activity event kinds.
const (
	ActivitySignup          = "signup"
	ActivityLogin           = "login"
	ActivityAdminLogin      = "admin_login"
	ActivityProfileUpdate   = "profile_update"
	ActivityCheckout        = "checkout"
	ActivityAdminUpdateUser = "admin_update_user"
	ActivityAdminDeleteUser = "admin_delete_user"
)

// ActivityRecord is an immutable audit-log entry for a domain event.
type ActivityRecord struct {
	ID      string         `json:"id"`
	Time    time.Time      `json:"time"`
	Type    string         `json:"type"`
	Email   string         `json:"email"`
	Details map[string]any `json:"details"`
}

// NewActivity describes an event to append; the store stamps id and time.
type NewActivity struct {
	Type    string
	Email   string
	Details map[string]any
}
