package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"agriconnect/internal/model"
	"agriconnect/internal/product"
	"agriconnect/internal/product/dto"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

type productRow struct {
	ID               string          `db:"id"`
	FarmerID         string          `db:"farmer_id"`
	Name             string          `db:"name"`
	Category         string          `db:"category"`
	Price            float64         `db:"price"`
	Unit             string          `db:"unit"`
	Description      string          `db:"description"`
	Images           sql.NullString  `db:"images"`
	Stock            int             `db:"stock"`
	QualityRating    float64         `db:"quality_rating"`
	QualityReviews   int             `db:"quality_reviews"`
	QualityOrganic   bool            `db:"quality_organic"`
	QualityFreshness int             `db:"quality_freshness"`
	LocationLat      sql.NullFloat64 `db:"location_lat"`
	LocationLng      sql.NullFloat64 `db:"location_lng"`
	LocationAddress  sql.NullString  `db:"location_address"`
	IsActive         bool            `db:"is_active"`
	CreatedAt        string          `db:"created_at"`
	UpdatedAt        string          `db:"updated_at"`
}

func productToRow(p *model.Product) *productRow {
	images, _ := json.Marshal(p.Images)
	return &productRow{
		ID:               p.ID,
		FarmerID:         p.FarmerID,
		Name:             p.Name,
		Category:         string(p.Category),
		Price:            p.Price,
		Unit:             p.Unit,
		Description:      p.Description,
		Images:           sql.NullString{String: string(images), Valid: true},
		Stock:            p.Stock,
		QualityRating:    p.Quality.Rating,
		QualityReviews:   p.Quality.Reviews,
		QualityOrganic:   p.Quality.Organic,
		QualityFreshness: p.Quality.Freshness,
		LocationLat:      sql.NullFloat64{Float64: p.Location.Lat, Valid: true},
		LocationLng:      sql.NullFloat64{Float64: p.Location.Lng, Valid: true},
		LocationAddress:  sql.NullString{String: p.Location.Address, Valid: true},
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func rowToProduct(row *productRow) *model.Product {
	createdAt, _ := time.Parse(time.RFC3339, row.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, row.UpdatedAt)

	images := []string{}
	if row.Images.Valid && row.Images.String != "" {
		_ = json.Unmarshal([]byte(row.Images.String), &images)
	}

	return &model.Product{
		BaseModel: model.BaseModel{
			ID:        row.ID,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		FarmerID:    row.FarmerID,
		Name:        row.Name,
		Category:    model.Category(row.Category),
		Price:       row.Price,
		Unit:        row.Unit,
		Description: row.Description,
		Images:      images,
		Stock:       row.Stock,
		Quality: model.Quality{
			Rating:    row.QualityRating,
			Reviews:   row.QualityReviews,
			Organic:   row.QualityOrganic,
			Freshness: row.QualityFreshness,
		},
		Location: model.Location{
			Lat:     row.LocationLat.Float64,
			Lng:     row.LocationLng.Float64,
			Address: row.LocationAddress.String,
		},
		IsActive: row.IsActive,
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, farmer_id, name, category, price, unit, description, images, stock,
			quality_rating, quality_reviews, quality_organic, quality_freshness,
			location_lat, location_lng, location_address,
			is_active, created_at, updated_at
		)
		VALUES (
			:id, :farmer_id, :name, :category, :price, :unit, :description, :images, :stock,
			:quality_rating, :quality_reviews, :quality_organic, :quality_freshness,
			:location_lat, :location_lng, :location_address,
			:is_active, :created_at, :updated_at
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, productToRow(p))
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM products WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToProduct(&row), nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE is_active = 1`
	args := []interface{}{}

	if f != nil && f.FarmerID != "" {
		query += ` AND farmer_id = ?`
		args = append(args, f.FarmerID)
	}
	query += ` ORDER BY created_at DESC`

	var rows []productRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	products := make([]model.Product, len(rows))
	for i := range rows {
		products[i] = *rowToProduct(&rows[i])
	}
	return products, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = :name,
			category = :category,
			price = :price,
			unit = :unit,
			description = :description,
			images = :images,
			stock = :stock,
			quality_rating = :quality_rating,
			quality_reviews = :quality_reviews,
			quality_organic = :quality_organic,
			quality_freshness = :quality_freshness,
			location_lat = :location_lat,
			location_lng = :location_lng,
			location_address = :location_address,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := r.DB.NamedExecContext(ctx, query, productToRow(p))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return product.ErrNotFound
	}
	return nil
}
