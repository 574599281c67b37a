package usecase

import (
	"context"

	"agriconnect/internal/model"
	"agriconnect/internal/product"
	productdto "agriconnect/internal/product/dto"
	"agriconnect/internal/recommendation"
	"agriconnect/pkg/logger"
)

type recommendationUseCase struct {
	products product.Repository
	logger   logger.Logger
}

func NewRecommendationUseCase(products product.Repository, log logger.Logger) recommendation.UseCase {
	return &recommendationUseCase{
		products: products,
		logger:   log,
	}
}

func (uc *recommendationUseCase) Recommend(ctx context.Context, origin model.Location, category string) ([]recommendation.Recommendation, error) {
	products, err := uc.products.FindAll(ctx, &productdto.ProductFilters{})
	if err != nil {
		return nil, err
	}
	return recommendation.Rank(products, origin, category), nil
}
