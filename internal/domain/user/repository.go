package user

import (
	"context"
)

// Repository returns (nil, nil) when a single-record lookup finds nothing.
type Repository interface {
	FetchUsers(ctx context.Context, q ListQuery) (Users, error)
	CountUsers(ctx context.Context, search string) (int64, error)
	FetchAllUsers(ctx context.Context) (Users, error)
	FetchUserByID(ctx context.Context, id UUID) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, id UUID, p Patch) (*User, error)
	DeleteUser(ctx context.Context, id UUID) (*User, error)
}
