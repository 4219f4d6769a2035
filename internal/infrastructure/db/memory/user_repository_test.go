package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory-api/internal/domain/user"
)

func tick(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newUser(first, last, email string) user.User {
	return user.User{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Gender:    user.GenderOther,
		Status:    user.StatusActive,
	}
}

func TestUserRepository_OrderingAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository().WithClock(tick(time.Unix(0, 0)))

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := repo.CreateUser(ctx, newUser("n", "m", email))
		require.NoError(t, err)
	}

	us, err := repo.FetchUsers(ctx, user.ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, us, 2)
	assert.Equal(t, "c@x.com", us[0].Email)
	assert.Equal(t, "b@x.com", us[1].Email)

	us, err = repo.FetchUsers(ctx, user.ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, us, 1)
	assert.Equal(t, "a@x.com", us[0].Email)

	us, err = repo.FetchUsers(ctx, user.ListQuery{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, us)

	us, err = repo.FetchUsers(ctx, user.ListQuery{Page: 1, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, us, 3)

	us, err = repo.FetchUsers(ctx, user.ListQuery{Page: 2, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Empty(t, us)
}

func TestUserRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	for _, u := range []user.User{
		newUser("John", "Doe", "john@mail.com"),
		newUser("Jane", "Smith", "jdoe@mail.com"),
		newUser("Doede", "Brown", "db@mail.com"),
		newUser("Alice", "Wong", "alice@mail.com"),
	} {
		_, err := repo.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	total, err := repo.CountUsers(ctx, "DOE")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	us, err := repo.FetchUsers(ctx, user.ListQuery{Page: 1, Limit: 10, Search: "doe"})
	require.NoError(t, err)
	assert.Len(t, us, 3)
	for _, u := range us {
		assert.NotEqual(t, "Alice", u.FirstName)
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	a, err := repo.CreateUser(ctx, newUser("A", "A", "a@x.com"))
	require.NoError(t, err)
	b, err := repo.CreateUser(ctx, newUser("B", "B", "b@x.com"))
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, newUser("C", "C", "a@x.com"))
	require.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	taken := "a@x.com"
	_, err = repo.UpdateUser(ctx, b.ID, user.Patch{Email: &taken})
	require.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	_, err = repo.UpdateUser(ctx, a.ID, user.Patch{Email: &taken})
	require.NoError(t, err)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	fixed := time.Unix(1000, 0)
	repo := NewUserRepository().WithClock(func() time.Time { return fixed })

	created, err := repo.CreateUser(ctx, newUser("A", "B", "a@b.com"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	inactive := user.StatusInactive
	updated, err := repo.UpdateUser(ctx, created.ID, user.Patch{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, user.StatusInactive, updated.Status)
	assert.Equal(t, created.FirstName, updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	missing, err := repo.UpdateUser(ctx, uuid.New(), user.Patch{Status: &inactive})
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	got, err := repo.FetchUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}
