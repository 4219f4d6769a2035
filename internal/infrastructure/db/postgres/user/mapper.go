package user

import (
	domain "user-directory-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           model.ID,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Email:        model.Email,
		Mobile:       model.Mobile,
		Gender:       domain.Gender(model.Gender),
		Status:       domain.Status(model.Status),
		Location:     model.Location,
		DateOfBirth:  model.DateOfBirth,
		ProfileImage: model.ProfileImage,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func optString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
