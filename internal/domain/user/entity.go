package user

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const DefaultProfileImage = "default-profile.png"

type (
	UUID   = uuid.UUID
	Gender string
	Status string
)

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"

	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

var (
	Genders  = []Gender{GenderMale, GenderFemale, GenderOther}
	Statuses = []Status{StatusActive, StatusInactive}
)

type (
	User struct {
		ID           UUID
		FirstName    string
		LastName     string
		Email        string
		Mobile       string
		Gender       Gender
		Status       Status
		Location     string
		DateOfBirth  time.Time
		ProfileImage string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Fields is the raw attribute set supplied by a caller. A nil pointer
	// means the attribute was not sent.
	Fields struct {
		FirstName    *string
		LastName     *string
		Email        *string
		Mobile       *string
		Gender       *string
		Status       *string
		Location     *string
		DateOfBirth  *string
		ProfileImage *string
	}

	// Patch is a validated partial update; nil members are left untouched.
	Patch struct {
		FirstName    *string
		LastName     *string
		Email        *string
		Mobile       *string
		Gender       *Gender
		Status       *Status
		Location     *string
		DateOfBirth  *time.Time
		ProfileImage *string
	}

	ListQuery struct {
		Page   int
		Limit  int
		Search string
	}

	Page struct {
		Users Users
		Total int64
		Pages int
	}
)

// Offset saturates at math.MaxInt instead of wrapping for huge page/limit pairs.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

func (p Patch) IsEmpty() bool { return p == Patch{} }
