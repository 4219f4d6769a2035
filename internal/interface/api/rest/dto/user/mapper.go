package user

import (
	"github.com/samber/lo"

	domain "user-directory-api/internal/domain/user"
)

func ToResponseUser(uDomain domain.User) User {
	return User{
		ID:           uDomain.ID,
		FirstName:    uDomain.FirstName,
		LastName:     uDomain.LastName,
		Email:        uDomain.Email,
		Mobile:       uDomain.Mobile,
		Gender:       string(uDomain.Gender),
		Status:       string(uDomain.Status),
		Location:     uDomain.Location,
		DateOfBirth:  uDomain.DateOfBirth,
		ProfileImage: uDomain.ProfileImage,
		CreatedAt:    uDomain.CreatedAt,
		UpdatedAt:    uDomain.UpdatedAt,
	}
}

// ToResponseUsers never returns nil, so an empty result encodes as [].
func ToResponseUsers(usDomain domain.Users) Users {
	return lo.Map(usDomain, func(u *domain.User, _ int) User {
		return ToResponseUser(*u)
	})
}

func ToListResponse(p domain.Page) ListResponse {
	return ListResponse{
		Users: ToResponseUsers(p.Users),
		Total: p.Total,
		Pages: p.Pages,
	}
}
