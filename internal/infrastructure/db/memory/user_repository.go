package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"user-directory-api/internal/domain/user"
)

type record struct {
	user user.User
	seq  uint64
}

// UserRepository keeps users in process memory. It mirrors the Postgres
// repository: newest-first ordering, unique email, store-assigned ids and
// timestamps.
type UserRepository struct {
	mu    sync.RWMutex
	seq   uint64
	store map[user.UUID]*record
	now   func() time.Time
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		store: make(map[user.UUID]*record),
		now:   time.Now,
	}
}

// WithClock replaces the time source; used by tests to control ordering.
func (r *UserRepository) WithClock(now func() time.Time) *UserRepository {
	r.now = now
	return r
}

func (r *UserRepository) FetchUsers(ctx context.Context, q user.ListQuery) (user.Users, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.sorted(q.Search)
	start := q.Offset()
	if start < 0 || start >= len(matched) {
		return user.Users{}, nil
	}
	end := len(matched)
	if q.Limit < end-start {
		end = start + q.Limit
	}

	return matched[start:end], nil
}

func (r *UserRepository) CountUsers(ctx context.Context, search string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.sorted(search))), nil
}

func (r *UserRepository) FetchAllUsers(ctx context.Context) (user.Users, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(""), nil
}

func (r *UserRepository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.store[id]
	if !ok {
		return nil, nil
	}

	u := rec.user
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(req.Email, uuid.Nil) {
		return nil, user.ErrEmailAlreadyExists
	}

	now := r.now().UTC()
	req.ID = uuid.New()
	req.CreatedAt = now
	req.UpdatedAt = now

	r.seq++
	r.store[req.ID] = &record{user: req, seq: r.seq}

	u := req
	return &u, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id user.UUID, p user.Patch) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	if p.Email != nil && r.emailTaken(*p.Email, id) {
		return nil, user.ErrEmailAlreadyExists
	}

	u := rec.user
	applyPatch(&u, p)

	u.UpdatedAt = r.now().UTC()
	if !u.UpdatedAt.After(rec.user.UpdatedAt) {
		u.UpdatedAt = rec.user.UpdatedAt.Add(time.Microsecond)
	}
	rec.user = u

	return &u, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	delete(r.store, id)

	u := rec.user
	return &u, nil
}

func (r *UserRepository) emailTaken(email string, except user.UUID) bool {
	for id, rec := range r.store {
		if id != except && rec.user.Email == email {
			return true
		}
	}
	return false
}

// sorted returns copies of the users matching search, newest first.
// Callers hold the lock.
func (r *UserRepository) sorted(search string) user.Users {
	recs := make([]*record, 0, len(r.store))
	for _, rec := range r.store {
		if matches(&rec.user, search) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.user.CreatedAt.Equal(b.user.CreatedAt) {
			return a.user.CreatedAt.After(b.user.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make(user.Users, len(recs))
	for i, rec := range recs {
		u := rec.user
		out[i] = &u
	}
	return out
}

func matches(u *user.User, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(u.FirstName), s) ||
		strings.Contains(strings.ToLower(u.LastName), s) ||
		strings.Contains(strings.ToLower(u.Email), s)
}

func applyPatch(u *user.User, p user.Patch) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Mobile != nil {
		u.Mobile = *p.Mobile
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
}
