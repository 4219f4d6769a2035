package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uuid.UUID `json:"_id"`
		FirstName    string    `json:"firstName"`
		LastName     string    `json:"lastName"`
		Email        string    `json:"email"`
		Mobile       string    `json:"mobile"`
		Gender       string    `json:"gender"`
		Status       string    `json:"status"`
		Location     string    `json:"location"`
		DateOfBirth  time.Time `json:"dateOfBirth"`
		ProfileImage string    `json:"profileImage"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}
	Users []User

	ListResponse struct {
		Users Users `json:"users"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)
