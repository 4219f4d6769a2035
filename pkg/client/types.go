package client

import (
	"fmt"
	"time"
)

type (
	User struct {
		ID           string    `json:"_id"`
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

	Page struct {
		Users []User `json:"users"`
		Total int64  `json:"total"`
		Pages int    `json:"pages"`
	}

	// UserInput holds the attributes to send; nil fields are omitted, so an
	// update only touches what is set.
	UserInput struct {
		FirstName   *string
		LastName    *string
		Email       *string
		Mobile      *string
		Gender      *string
		Status      *string
		Location    *string
		DateOfBirth *string
		RemoveImage bool
	}

	// Image is an avatar upload.
	Image struct {
		FileName string
		Content  []byte
	}
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("user directory api: %d %s", e.Status, e.Message)
}

// String is a helper for filling UserInput.
func String(s string) *string { return &s }
