package repositories

import (
	"context"
	"testing"

	"usernotes/internal/database"
	"usernotes/internal/database/dto"
	"usernotes/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, svc database.Service, query string, args ...any) int {
	t.Helper()
	var n int
	err := svc.DB().QueryRow(svc.Dialect().Rebind(query), args...).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestUserRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc database.Service) {
		ctx := context.Background()
		repo := NewUserRepository(svc.DB(), svc.Dialect())

		jack, err := repo.Create(ctx, dto.UserInput{Name: "Jack Sparrow", Email: "jack@me.com"})
		require.NoError(t, err)
		assert.NotZero(t, jack.ID)
		assert.Equal(t, "Jack Sparrow", jack.Name)
		assert.Equal(t, "jack@me.com", jack.Email)

		t.Run("get by id", func(t *testing.T) {
			got, err := repo.GetByID(ctx, jack.ID)
			require.NoError(t, err)
			assert.Equal(t, jack, got)
		})

		t.Run("get by email", func(t *testing.T) {
			got, err := repo.GetByEmail(ctx, "jack@me.com")
			require.NoError(t, err)
			assert.Equal(t, jack.ID, got.ID)

			_, err = repo.GetByEmail(ctx, "nobody@me.com")
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("absent id", func(t *testing.T) {
			_, err := repo.GetByID(ctx, jack.ID+1000)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("duplicate email is rejected by the store", func(t *testing.T) {
			_, err := repo.Create(ctx, dto.UserInput{Name: "Jack Bauer", Email: "jack@me.com"})
			assert.ErrorIs(t, err, ErrDuplicateEmail)
			assert.Equal(t, 1, countRows(t, svc, `SELECT COUNT(*) FROM users WHERE email = $1`, "jack@me.com"))
		})

		t.Run("update", func(t *testing.T) {
			updated, err := repo.Update(ctx, jack.ID, dto.UserInput{Name: "Jack Bauer", Email: "bauer@ctu.gov"})
			require.NoError(t, err)
			assert.Equal(t, &models.User{ID: jack.ID, Name: "Jack Bauer", Email: "bauer@ctu.gov"}, updated)

			got, err := repo.GetByID(ctx, jack.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, got)
		})

		t.Run("update absent id", func(t *testing.T) {
			_, err := repo.Update(ctx, jack.ID+1000, dto.UserInput{Name: "Ghost", Email: "ghost@me.com"})
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("update onto another user's email", func(t *testing.T) {
			will, err := repo.Create(ctx, dto.UserInput{Name: "Will Turner", Email: "will@pearl.com"})
			require.NoError(t, err)

			_, err = repo.Update(ctx, will.ID, dto.UserInput{Name: "Will Turner", Email: "bauer@ctu.gov"})
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		})

		t.Run("delete", func(t *testing.T) {
			ok, err := repo.Delete(ctx, jack.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = repo.Delete(ctx, jack.ID)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = repo.GetByID(ctx, jack.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	})
}

func TestSearchUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc database.Service) {
		ctx := context.Background()
		users := NewUserRepository(svc.DB(), svc.Dialect())
		search := NewSearchRepository(svc.DB(), svc.Dialect())

		var created []models.User
		for _, in := range []dto.UserInput{
			{Name: "Jack Sparrow", Email: "jack@me.com"},
			{Name: "Will Turner", Email: "will@pearl.com"},
			{Name: "Elizabeth Swann", Email: "liz@Jack.org"},
		} {
			u, err := users.Create(ctx, in)
			require.NoError(t, err)
			created = append(created, *u)
		}

		tests := []struct {
			substring string
			want      []models.User
		}{
			{substring: "Jack", want: []models.User{created[0], created[2]}},
			{substring: "jack", want: []models.User{created[0]}},
			{substring: "pearl", want: []models.User{created[1]}},
			{substring: "an", want: []models.User{created[2]}},
			{substring: "zzz", want: []models.User{}},
			{substring: "", want: created},
		}
		for _, tt := range tests {
			got, err := search.SearchUsers(ctx, tt.substring)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "search %q", tt.substring)
		}
	})
}
