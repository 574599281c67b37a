package dto

import "agriconnect/internal/model"

type SignUpInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	// Location is the address string the signup form collects; lat/lng
	// default to Kigali.
	Location string `json:"location"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserInput is the closed set of updatable user fields. Role and
// email are deliberately absent: both are fixed at creation. Nil means
// "leave unchanged".
type UpdateUserInput struct {
	Name     *string        `json:"name"`
	Phone    *string        `json:"phone"`
	Avatar   *string        `json:"avatar"`
	IsActive *bool          `json:"isActive"`
	Location *LocationInput `json:"location"`
	Farm     *FarmInput     `json:"farm"`
}

func (in *UpdateUserInput) Empty() bool {
	return in.Name == nil && in.Phone == nil && in.Avatar == nil &&
		in.IsActive == nil && in.Location == nil && in.Farm == nil
}

type LocationInput struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

func (in *LocationInput) Model() model.Location {
	return model.Location{Lat: in.Lat, Lng: in.Lng, Address: in.Address}
}

type FarmInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Certifications  []string `json:"certifications"`
	EstablishedYear int      `json:"establishedYear"`
}
