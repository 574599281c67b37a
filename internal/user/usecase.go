package user

import (
	"context"

	"agriconnect/internal/model"
	"agriconnect/internal/user/dto"
)

type UseCase interface {
	SignUp(ctx context.Context, input *dto.SignUpInput) (*dto.AuthResult, error)
	SignIn(ctx context.Context, input *dto.SignInInput) (*dto.AuthResult, error)

	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id string, input *dto.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}
