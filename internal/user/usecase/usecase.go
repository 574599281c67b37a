package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agriconnect/internal/auth"
	"agriconnect/internal/model"
	"agriconnect/internal/user"
	"agriconnect/internal/user/dto"
	"agriconnect/pkg/logger"
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.Manager
	logger logger.Logger
}

func NewUserUseCase(repo user.Repository, tokens *auth.Manager, log logger.Logger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) SignUp(ctx context.Context, input *dto.SignUpInput) (*dto.AuthResult, error) {
	role := model.Role(input.Role)
	if !role.Valid() {
		return nil, user.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	location := model.DefaultLocation
	if input.Location != "" {
		location.Address = input.Location
	}

	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        input.Phone,
		Location:     location,
		IsActive:     true,
	}
	if role == model.RoleFarmer {
		u.Farm = &model.Farm{Certifications: []string{}}
		u.Stats = &model.FarmerStats{}
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user signed up", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &dto.AuthResult{User: u, Token: token}, nil
}

func (uc *userUseCase) SignIn(ctx context.Context, input *dto.SignInInput) (*dto.AuthResult, error) {
	u, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, user.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{User: u, Token: token}, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, id string, input *dto.UpdateUserInput) (*model.User, error) {
	if input.Empty() {
		return nil, user.ErrEmptyUpdate
	}

	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}

	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Phone != nil {
		u.Phone = *input.Phone
	}
	if input.Avatar != nil {
		u.Avatar = *input.Avatar
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}
	if input.Location != nil {
		u.Location = input.Location.Model()
	}
	if input.Farm != nil {
		certs := input.Farm.Certifications
		if certs == nil {
			certs = []string{}
		}
		u.Farm = &model.Farm{
			Name:            input.Farm.Name,
			Description:     input.Farm.Description,
			Certifications:  certs,
			EstablishedYear: input.Farm.EstablishedYear,
		}
	}
	u.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
