package dto

import "agriconnect/internal/model"

type CreateProductInput struct {
	FarmerID    string         `json:"farmerId" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Category    string         `json:"category" binding:"required"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Unit        string         `json:"unit" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Images      []string       `json:"images"`
	Stock       int            `json:"stock"`
	Quality     *QualityInput  `json:"quality"`
	Location    *LocationInput `json:"location"`
}

// UpdateProductInput is the closed set of updatable product fields; nil
// means "leave unchanged". The owning farmer is fixed at creation.
type UpdateProductInput struct {
	Name        *string        `json:"name"`
	Category    *string        `json:"category"`
	Price       *float64       `json:"price"`
	Unit        *string        `json:"unit"`
	Description *string        `json:"description"`
	Images      *[]string      `json:"images"`
	Stock       *int           `json:"stock"`
	IsActive    *bool          `json:"isActive"`
	Quality     *QualityInput  `json:"quality"`
	Location    *LocationInput `json:"location"`
}

func (in *UpdateProductInput) Empty() bool {
	return in.Name == nil && in.Category == nil && in.Price == nil &&
		in.Unit == nil && in.Description == nil && in.Images == nil &&
		in.Stock == nil && in.IsActive == nil && in.Quality == nil &&
		in.Location == nil
}

type QualityInput struct {
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"reviews"`
	Organic   bool    `json:"organic"`
	Freshness int     `json:"freshness"`
}

func (in *QualityInput) Model() model.Quality {
	return model.Quality{
		Rating:    in.Rating,
		Reviews:   in.Reviews,
		Organic:   in.Organic,
		Freshness: in.Freshness,
	}
}

type LocationInput struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

func (in *LocationInput) Model() model.Location {
	return model.Location{Lat: in.Lat, Lng: in.Lng, Address: in.Address}
}
