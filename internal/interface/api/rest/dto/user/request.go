package user

import (
	"strings"

	domain "user-directory-api/internal/domain/user"
)

type (
	// Request carries the optional user attributes of a create or update
	// call. Absent attributes stay nil.
	Request struct {
		FirstName   *string `json:"firstName"`
		LastName    *string `json:"lastName"`
		Email       *string `json:"email"`
		Mobile      *string `json:"mobile"`
		Gender      *string `json:"gender"`
		Status      *string `json:"status"`
		Location    *string `json:"location"`
		DateOfBirth *string `json:"dateOfBirth"`
		RemoveImage Flag    `json:"removeImage"`
	}

	// Flag decodes both `true` and `"true"`; anything else is false.
	Flag bool
)

func (f *Flag) UnmarshalJSON(b []byte) error {
	*f = Flag(strings.Trim(string(b), `"`) == "true")
	return nil
}

// FromForm builds a Request from form values; get reports whether the key
// was sent at all.
func FromForm(get func(key string) (string, bool)) Request {
	value := func(key string) *string {
		if v, ok := get(key); ok {
			return &v
		}
		return nil
	}

	req := Request{
		FirstName:   value("firstName"),
		LastName:    value("lastName"),
		Email:       value("email"),
		Mobile:      value("mobile"),
		Gender:      value("gender"),
		Status:      value("status"),
		Location:    value("location"),
		DateOfBirth: value("dateOfBirth"),
	}
	if v, ok := get("removeImage"); ok {
		req.RemoveImage = Flag(v == "true")
	}

	return req
}

func (r Request) ToFields() domain.Fields {
	return domain.Fields{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Mobile:      r.Mobile,
		Gender:      r.Gender,
		Status:      r.Status,
		Location:    r.Location,
		DateOfBirth: r.DateOfBirth,
	}
}
