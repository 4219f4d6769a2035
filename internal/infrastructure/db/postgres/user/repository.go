package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/db/postgres"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context, q user.ListQuery) (user.Users, error) {
	return r.fetchMany(ctx, SelectUsers, q.Search, q.Limit, q.Offset())
}

func (r *Repository) CountUsers(ctx context.Context, search string) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, CountUsers, search).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *Repository) FetchAllUsers(ctx context.Context) (user.Users, error) {
	return r.fetchMany(ctx, SelectAllUsers)
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, id.String())
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := r.fetchOne(ctx, InsertUser,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Mobile,
		string(req.Gender),
		string(req.Status),
		req.Location,
		req.DateOfBirth,
		req.ProfileImage,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) UpdateUser(ctx context.Context, id user.UUID, p user.Patch) (*user.User, error) {
	u, err := r.fetchOne(ctx, UpdateUserByID,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Mobile,
		optString(p.Gender),
		optString(p.Status),
		p.Location,
		p.DateOfBirth,
		p.ProfileImage,
		id.String(),
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, DeleteUserByID, id.String())
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u := new(User)
	if err := r.db.QueryRow(ctx, query, args...).Scan(u.scanDest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (user.Users, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := make(Users, 0)
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanDest()...); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}
