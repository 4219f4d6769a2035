package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"user-directory-api/internal/application/ports"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/metrics"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	SearchLimit  = 100
)

type UserService struct {
	userRepository domain.Repository
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

// FindUsers returns one page of users, newest first, together with the
// number of matching users and pages.
func (us *UserService) FindUsers(ctx context.Context, q domain.ListQuery) (*domain.Page, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	users, err := us.userRepository.FetchUsers(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := us.userRepository.CountUsers(ctx, q.Search)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Users: users,
		Total: total,
		Pages: pageCount(total, q.Limit),
	}, nil
}

// pageCount is ceil(total/limit) without the overflow of total+limit-1.
func pageCount(total int64, limit int) int {
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return int(pages)
}

func (us *UserService) SearchUsers(ctx context.Context, text string) (domain.Users, error) {
	page, err := us.FindUsers(ctx, domain.ListQuery{Page: 1, Limit: SearchLimit, Search: text})
	if err != nil {
		return nil, err
	}

	return page.Users, nil
}

func (us *UserService) FindAllUsers(ctx context.Context) (domain.Users, error) {
	return us.userRepository.FetchAllUsers(ctx)
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	return u, nil
}

func (us *UserService) CreateUser(ctx context.Context, f domain.Fields) (*domain.User, error) {
	u, err := domain.ValidateNew(f)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	metrics.Inc(us.mCounter, metrics.UserCreated)

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, id domain.UUID, f domain.Fields) (*domain.User, error) {
	p, err := domain.ValidatePatch(f)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.UpdateUser(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if uRet == nil {
		return nil, domain.ErrNotFound
	}

	metrics.Inc(us.mCounter, metrics.UserUpdated)

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	metrics.Inc(us.mCounter, metrics.UserDeleted)

	return u, nil
}
