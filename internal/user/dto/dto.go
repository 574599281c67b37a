package dto

import "agriconnect/internal/model"

// AuthResult is what signin/signup hand back to the client.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}
