package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uuid.UUID
		FirstName    string
		LastName     string
		Email        string
		Mobile       string
		Gender       string
		Status       string
		Location     string
		DateOfBirth  time.Time
		ProfileImage string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

// scanDest lists the destinations in the column order of userColumns.
func (u *User) scanDest() []any {
	return []any{
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Mobile,
		&u.Gender,
		&u.Status,
		&u.Location,
		&u.DateOfBirth,
		&u.ProfileImage,

		&u.CreatedAt,
		&u.UpdatedAt,
	}
}
