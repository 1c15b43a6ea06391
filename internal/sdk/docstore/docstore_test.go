package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
)

func openTestStore(t *testing.T) (Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

func signupActivity(email string) models.NewActivity {
	return models.NewActivity{Type: models.ActivitySignup, Email: email, Details: map[string]any{}}
}

func TestCreateUser(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.NewUser{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: []byte("hash"),
	}, signupActivity("jane@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@example.com", user.Email, "email is normalized to lower case")
	assert.Nil(t, user.Profile)
	assert.False(t, user.CreatedAt.IsZero())

	acts, err := store.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, models.ActivitySignup, acts[0].Type)
	assert.NotEmpty(t, acts[0].ID)
	assert.False(t, acts[0].Time.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		_, err := store.CreateUser(ctx, models.NewUser{Name: "Other", Email: "jane@example.com"}, signupActivity("jane@example.com"))
		assert.ErrorIs(t, err, ErrDuplicatedEntry)
	})

	t.Run("duplicate email different case", func(t *testing.T) {
		_, err := store.CreateUser(ctx, models.NewUser{Name: "Other", Email: "JANE@EXAMPLE.COM"}, signupActivity("jane@example.com"))
		assert.ErrorIs(t, err, ErrDuplicatedEntry)
	})

	t.Run("failed create leaves log untouched", func(t *testing.T) {
		acts, err := store.ListActivities(ctx)
		require.NoError(t, err)
		assert.Len(t, acts, 1)
	})
}

func TestConcurrentCreateUser(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.CreateUser(ctx, models.NewUser{
				Name:  "Racer",
				Email: "race@example.com",
			}, signupActivity("race@example.com"))
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicatedEntry):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created, "exactly one concurrent signup must win")
	assert.Equal(t, workers-1, conflicts)

	users, err := store.SearchUsers(ctx, "race@example.com")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSearchUsers(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, models.NewUser{Name: "Jane Doe", Email: "jane@example.com"}, signupActivity("jane@example.com"))
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, models.NewUser{Name: "John Smith", Email: "john@other.org"}, signupActivity("john@other.org"))
	require.NoError(t, err)

	all, err := store.SearchUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty query returns everyone")

	byName, err := store.SearchUsers(ctx, "JANE")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Jane Doe", byName[0].Name)

	byEmail, err := store.SearchUsers(ctx, "other.org")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "John Smith", byEmail[0].Name)

	none, err := store.SearchUsers(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateUser(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	jane, err := store.CreateUser(ctx, models.NewUser{Name: "Jane", Email: "jane@example.com"}, signupActivity("jane@example.com"))
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, models.NewUser{Name: "John", Email: "john@example.com"}, signupActivity("john@example.com"))
	require.NoError(t, err)

	act := models.NewActivity{Type: models.ActivityAdminUpdateUser, Email: "admin@example.com"}

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.UpdateUser(ctx, "missing", "X", "", act)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("email conflict", func(t *testing.T) {
		_, err := store.UpdateUser(ctx, jane.ID, "", "john@example.com", act)
		assert.ErrorIs(t, err, ErrDuplicatedEntry)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := store.UpdateUser(ctx, jane.ID, "Janet", "", act)
		require.NoError(t, err)
		assert.Equal(t, "Janet", updated.Name)
		assert.Equal(t, "jane@example.com", updated.Email)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		updated, err := store.UpdateUser(ctx, jane.ID, "", "JANE@example.com", act)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", updated.Email)
	})
}

func TestDeleteUser(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	jane, err := store.CreateUser(ctx, models.NewUser{Name: "Jane", Email: "jane@example.com"}, signupActivity("jane@example.com"))
	require.NoError(t, err)

	act := models.NewActivity{Type: models.ActivityAdminDeleteUser, Email: "admin@example.com"}

	removed, err := store.DeleteUser(ctx, jane.ID, act)
	require.NoError(t, err)
	assert.Equal(t, jane.ID, removed.ID)

	_, err = store.GetUserByID(ctx, jane.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.DeleteUser(ctx, jane.ID, act)
	assert.ErrorIs(t, err, ErrNotFound, "delete is idempotent-safe")
}

func TestSaveProfile(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	jane, err := store.CreateUser(ctx, models.NewUser{Name: "Jane", Email: "jane@example.com"}, signupActivity("jane@example.com"))
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, models.NewUser{Name: "John", Email: "john@example.com"}, signupActivity("john@example.com"))
	require.NoError(t, err)

	profile := models.Profile{Name: "Jane", Gender: models.GenderFemale, Age: 30, HeightCm: 170, WeightKg: 70, BMI: 24.2, FitnessAge: 30}
	act := models.NewActivity{Type: models.ActivityProfileUpdate, Email: "jane@example.com"}

	t.Run("keeps email when unchanged", func(t *testing.T) {
		updated, emailChanged, err := store.SaveProfile(ctx, jane.ID, "Jane", "", profile, act)
		require.NoError(t, err)
		assert.False(t, emailChanged)
		require.NotNil(t, updated.Profile)
		assert.Equal(t, 24.2, updated.Profile.BMI)
	})

	t.Run("email conflict", func(t *testing.T) {
		_, _, err := store.SaveProfile(ctx, jane.ID, "Jane", "john@example.com", profile, act)
		assert.ErrorIs(t, err, ErrDuplicatedEntry)
	})

	t.Run("email change", func(t *testing.T) {
		updated, emailChanged, err := store.SaveProfile(ctx, jane.ID, "Jane", "janet@example.com", profile, act)
		require.NoError(t, err)
		assert.True(t, emailChanged)
		assert.Equal(t, "janet@example.com", updated.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := store.SaveProfile(ctx, "missing", "Jane", "", profile, act)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestActivities(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	first, err := store.AppendActivity(ctx, models.NewActivity{Type: models.ActivityLogin, Email: "jane@example.com", Details: map[string]any{}})
	require.NoError(t, err)
	_, err = store.AppendActivity(ctx, models.NewActivity{Type: models.ActivityCheckout, Email: "jane@example.com", Details: map[string]any{"total": 72.2}})
	require.NoError(t, err)
	last, err := store.AppendActivity(ctx, models.NewActivity{Type: models.ActivityAdminLogin, Email: "admin@example.com", Details: map[string]any{}})
	require.NoError(t, err)

	t.Run("export keeps append order", func(t *testing.T) {
		acts, err := store.ListActivities(ctx)
		require.NoError(t, err)
		require.Len(t, acts, 3)
		assert.Equal(t, first.ID, acts[0].ID)
		assert.Equal(t, last.ID, acts[2].ID)
	})

	t.Run("search is newest first", func(t *testing.T) {
		acts, err := store.SearchActivities(ctx, "")
		require.NoError(t, err)
		require.Len(t, acts, 3)
		assert.Equal(t, last.ID, acts[0].ID)
		assert.Equal(t, first.ID, acts[2].ID)
	})

	t.Run("search matches type email and details", func(t *testing.T) {
		byType, err := store.SearchActivities(ctx, "checkout")
		require.NoError(t, err)
		assert.Len(t, byType, 1)

		byEmail, err := store.SearchActivities(ctx, "ADMIN@")
		require.NoError(t, err)
		assert.Len(t, byEmail, 1)

		byDetails, err := store.SearchActivities(ctx, "72.2")
		require.NoError(t, err)
		assert.Len(t, byDetails, 1)
	})

	t.Run("log never shrinks", func(t *testing.T) {
		before, err := store.ListActivities(ctx)
		require.NoError(t, err)

		_, err = store.CreateUser(ctx, models.NewUser{Name: "Jane", Email: "jane@example.com"}, signupActivity("jane@example.com"))
		require.NoError(t, err)

		after, err := store.ListActivities(ctx)
		require.NoError(t, err)
		assert.Greater(t, len(after), len(before))
	})
}

func TestProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	doc := document{
		Products: []models.Product{
			{ID: "P1", Name: "Dumbbell Set", Company: "IronWorks", Type: "equipment", Price: 30, Weight: "20kg"},
			{ID: "P2", Name: "Whey Protein", Company: "NutriLab", Type: "supplement", Price: 19.99, Weight: "1kg"},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	store, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	p, err := store.GetProduct(ctx, "P2")
	require.NoError(t, err)
	assert.Equal(t, 19.99, p.Price)

	_, err = store.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)

	created, err := store.CreateUser(ctx, models.NewUser{Name: "Jane", Email: "jane@example.com", Password: []byte("hash")}, signupActivity("jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)

	user, err := reopened.GetUserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, []byte("hash"), user.Password)

	acts, err := reopened.ListActivities(ctx)
	require.NoError(t, err)
	assert.Len(t, acts, 1)
}
