// Package docstore provides persistence for the fitness store service.
//
// The persisted state is a single JSON document holding users, the product
// catalog and the activity log. Every mutating method performs its whole
// read-modify-write sequence, including uniqueness checks and the audit
// record for the action, under one mutex, so concurrent mutations with
// colliding emails can never both succeed.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicatedEntry = errors.New("duplicated entry")
)

// Service represents a service that interacts with the document store.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close flushes the document and releases the store.
	Close() error

	// User operations. Mutators append the given activity record in the
	// same critical section as the mutation itself.
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.NewUser, act models.NewActivity) (models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	UpdateUser(ctx context.Context, userID, name, email string, act models.NewActivity) (models.User, error)
	DeleteUser(ctx context.Context, userID string, act models.NewActivity) (models.User, error)
	SaveProfile(ctx context.Context, userID, name, newEmail string, profile models.Profile, act models.NewActivity) (models.User, bool, error)

	// Product catalog (read-only; seeded externally).
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (models.Product, error)

	// Activity log.
	AppendActivity(ctx context.Context, act models.NewActivity) (models.ActivityRecord, error)
	ListActivities(ctx context.Context) ([]models.ActivityRecord, error)
	SearchActivities(ctx context.Context, query string) ([]models.ActivityRecord, error)
}

// document is the shape of the persisted JSON file.
type document struct {
	Users      []models.User           `json:"users"`
	Products   []models.Product        `json:"products"`
	Activities []models.ActivityRecord `json:"activities"`
}

type service struct {
	mu   sync.Mutex
	path string
	doc  document
}

var dbInstance *service

// New opens the store at the path given by the DB_PATH environment
// variable, reusing the already opened instance when called twice.
func New() Service {
	if dbInstance != nil {
		return dbInstance
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "db.json"
	}

	s, err := Open(path)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance = s.(*service)
	return dbInstance
}

// Open loads the document at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (Service, error) {
	s := &service{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.flush(s.doc); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("docstore: reading %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("docstore: parsing %s: %w", path, err)
		}
	}

	return s, nil
}

// Health reports store status and collection sizes.
func (s *service) Health() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[string]string)
	if _, err := os.Stat(s.path); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("document unavailable: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["path"] = s.path
	stats["users"] = strconv.Itoa(len(s.doc.Users))
	stats["products"] = strconv.Itoa(len(s.doc.Products))
	stats["activities"] = strconv.Itoa(len(s.doc.Activities))
	return stats
}

func (s *service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(s.doc)
}

// flush writes the document atomically: marshal to a temp file in the same
// directory, then rename over the target.
func (s *service) flush(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: encoding document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("docstore: creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("docstore: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("docstore: closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("docstore: replacing %s: %w", s.path, err)
	}
	return nil
}

// commit flushes next to disk and installs it as the current document.
// Callers must hold s.mu. A failed flush leaves the in-memory state
// untouched, so the request fails without a partial mutation.
func (s *service) commit(next document) error {
	if err := s.flush(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// normalizeEmail lowers the case of an email so uniqueness checks and
// lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) findUserByEmail(email string) (int, bool) {
	norm := normalizeEmail(email)
	for i, u := range s.doc.Users {
		if normalizeEmail(u.Email) == norm {
			return i, true
		}
	}
	return 0, false
}

func (s *service) findUserByID(userID string) (int, bool) {
	for i, u := range s.doc.Users {
		if u.ID == userID {
			return i, true
		}
	}
	return 0, false
}

func newRecord(act models.NewActivity) models.ActivityRecord {
	return models.ActivityRecord{
		ID:      uuid.New().String(),
		Time:    time.Now().UTC(),
		Type:    act.Type,
		Email:   act.Email,
		Details: act.Details,
	}
}

func (s *service) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findUserByID(userID)
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.doc.Users[i], nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findUserByEmail(email)
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.doc.Users[i], nil
}

func (s *service) CreateUser(ctx context.Context, user models.NewUser, act models.NewActivity) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findUserByEmail(user.Email); exists {
		return models.User{}, ErrDuplicatedEntry
	}

	created := models.User{
		ID:        uuid.New().String(),
		Name:      user.Name,
		Email:     normalizeEmail(user.Email),
		Password:  user.Password,
		Profile:   nil,
		CreatedAt: time.Now().UTC(),
	}

	next := s.doc
	next.Users = append(append([]models.User(nil), s.doc.Users...), created)
	next.Activities = append(append([]models.ActivityRecord(nil), s.doc.Activities...), newRecord(act))

	if err := s.commit(next); err != nil {
		return models.User{}, err
	}
	return created, nil
}

func (s *service) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	users := make([]models.User, 0, len(s.doc.Users))
	for _, u := range s.doc.Users {
		if q == "" ||
			strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	return users, nil
}

// UpdateUser applies a partial identity update. Empty name or email means
// "leave unchanged". An email change is checked for uniqueness against the
// current document before the write.
func (s *service) UpdateUser(ctx context.Context, userID, name, email string, act models.NewActivity) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findUserByID(userID)
	if !ok {
		return models.User{}, ErrNotFound
	}

	updated := s.doc.Users[i]
	if email != "" && normalizeEmail(email) != normalizeEmail(updated.Email) {
		if _, taken := s.findUserByEmail(email); taken {
			return models.User{}, ErrDuplicatedEntry
		}
		updated.Email = normalizeEmail(email)
	}
	if name != "" {
		updated.Name = name
	}

	next := s.doc
	next.Users = append([]models.User(nil), s.doc.Users...)
	next.Users[i] = updated
	next.Activities = append(append([]models.ActivityRecord(nil), s.doc.Activities...), newRecord(act))

	if err := s.commit(next); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

func (s *service) DeleteUser(ctx context.Context, userID string, act models.NewActivity) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findUserByID(userID)
	if !ok {
		return models.User{}, ErrNotFound
	}
	removed := s.doc.Users[i]

	next := s.doc
	next.Users = append(append([]models.User(nil), s.doc.Users[:i]...), s.doc.Users[i+1:]...)
	next.Activities = append(append([]models.ActivityRecord(nil), s.doc.Activities...), newRecord(act))

	if err := s.commit(next); err != nil {
		return models.User{}, err
	}
	return removed, nil
}

// SaveProfile persists name, profile and (optionally) a new email as one
// record update. The second return value reports whether the email
// actually changed, so the caller can issue a fresh token.
func (s *service) SaveProfile(ctx context.Context, userID, name, newEmail string, profile models.Profile, act models.NewActivity) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findUserByID(userID)
	if !ok {
		return models.User{}, false, ErrNotFound
	}

	updated := s.doc.Users[i]
	emailChanged := false
	if newEmail != "" && normalizeEmail(newEmail) != normalizeEmail(updated.Email) {
		if _, taken := s.findUserByEmail(newEmail); taken {
			return models.User{}, false, ErrDuplicatedEntry
		}
		updated.Email = normalizeEmail(newEmail)
		emailChanged = true
	}
	updated.Name = name
	updated.Profile = &profile

	next := s.doc
	next.Users = append([]models.User(nil), s.doc.Users...)
	next.Users[i] = updated
	next.Activities = append(append([]models.ActivityRecord(nil), s.doc.Activities...), newRecord(act))

	if err := s.commit(next); err != nil {
		return models.User{}, false, err
	}
	return updated, emailChanged, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.Product, 0, len(s.doc.Products))
	products = append(products, s.doc.Products...)
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.doc.Products {
		if p.ID == productID {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *service) AppendActivity(ctx context.Context, act models.NewActivity) (models.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := newRecord(act)
	next := s.doc
	next.Activities = append(append([]models.ActivityRecord(nil), s.doc.Activities...), record)

	if err := s.commit(next); err != nil {
		return models.ActivityRecord{}, err
	}
	return record, nil
}

// ListActivities returns the full log in append order, for export.
func (s *service) ListActivities(ctx context.Context) ([]models.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acts := make([]models.ActivityRecord, 0, len(s.doc.Activities))
	acts = append(acts, s.doc.Activities...)
	return acts, nil
}

// SearchActivities returns matching records most recent first. The query
// is matched case-insensitively against type, actor email and the
// stringified details payload.
func (s *service) SearchActivities(ctx context.Context, query string) ([]models.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	acts := make([]models.ActivityRecord, 0, len(s.doc.Activities))
	for i := len(s.doc.Activities) - 1; i >= 0; i-- {
		a := s.doc.Activities[i]
		if q == "" || activityMatches(a, q) {
			acts = append(acts, a)
		}
	}
	return acts, nil
}

func activityMatches(a models.ActivityRecord, q string) bool {
	if strings.Contains(strings.ToLower(a.Type), q) ||
		strings.Contains(strings.ToLower(a.Email), q) {
		return true
	}
	details, err := json.Marshal(a.Details)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(details)), q)
}
