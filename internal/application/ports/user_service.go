package ports

import (
	"context"

	"user-directory-api/internal/domain/user"
)

type UserService interface {
	FindUsers(ctx context.Context, q user.ListQuery) (*user.Page, error)
	SearchUsers(ctx context.Context, text string) (user.Users, error)
	FindAllUsers(ctx context.Context) (user.Users, error)
	FindUserByID(ctx context.Context, id user.UUID) (*user.User, error)
	CreateUser(ctx context.Context, f user.Fields) (*user.User, error)
	UpdateUser(ctx context.Context, id user.UUID, f user.Fields) (*user.User, error)
	DeleteUser(ctx context.Context, id user.UUID) (*user.User, error)
}
