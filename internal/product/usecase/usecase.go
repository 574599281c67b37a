package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agriconnect/internal/model"
	"agriconnect/internal/product"
	"agriconnect/internal/product/dto"
	"agriconnect/pkg/cache"
	"agriconnect/pkg/logger"
)

const listCacheTTL = 5 * time.Minute

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	logger logger.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, log logger.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	category := model.Category(input.Category)
	if !category.Valid() {
		return nil, product.ErrInvalidCategory
	}

	now := time.Now()
	images := input.Images
	if images == nil {
		images = []string{}
	}

	quality := model.Quality{Freshness: 100}
	if input.Quality != nil {
		quality = input.Quality.Model()
	}
	location := model.DefaultLocation
	if input.Location != nil {
		location = input.Location.Model()
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		FarmerID:    input.FarmerID,
		Name:        input.Name,
		Category:    category,
		Price:       input.Price,
		Unit:        input.Unit,
		Description: input.Description,
		Images:      images,
		Stock:       input.Stock,
		Quality:     quality,
		Location:    location,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("farmer_id", p.FarmerID),
	)
	go uc.invalidateListCache(context.Background())

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	cacheKey := uc.listCacheKey(filters)
	if val, ok := uc.cache.Get(ctx, cacheKey); ok {
		var cached []model.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		uc.cache.Set(ctx, cacheKey, data, listCacheTTL)
	}
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.Empty() {
		return nil, product.ErrEmptyUpdate
	}
	if input.Category != nil && !model.Category(*input.Category).Valid() {
		return nil, product.ErrInvalidCategory
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Category != nil {
		p.Category = model.Category(*input.Category)
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Images != nil {
		p.Images = *input.Images
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.Quality != nil {
		p.Quality = input.Quality.Model()
	}
	if input.Location != nil {
		p.Location = input.Location.Model()
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product updated", zap.String("product_id", p.ID))
	go uc.invalidateListCache(context.Background())

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("product deleted", zap.String("product_id", id))
	go uc.invalidateListCache(context.Background())
	return nil
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	farmerID := ""
	if filters != nil {
		farmerID = filters.FarmerID
	}
	return fmt.Sprintf("products:list:%s", farmerID)
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	uc.cache.DeletePattern(ctx, "products:list:*")
}
