package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"agriconnect/internal/model"
	"agriconnect/internal/user"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

// userRow is the flat storage shape of a user. Nested location/farm/stats
// structs are exploded into prefixed columns; certifications are JSON text.
type userRow struct {
	ID                  string          `db:"id"`
	Name                string          `db:"name"`
	Email               string          `db:"email"`
	Password            string          `db:"password"`
	Role                string          `db:"role"`
	Phone               sql.NullString  `db:"phone"`
	Avatar              sql.NullString  `db:"avatar"`
	LocationLat         sql.NullFloat64 `db:"location_lat"`
	LocationLng         sql.NullFloat64 `db:"location_lng"`
	LocationAddress     sql.NullString  `db:"location_address"`
	FarmName            sql.NullString  `db:"farm_name"`
	FarmDescription     sql.NullString  `db:"farm_description"`
	FarmCertifications  sql.NullString  `db:"farm_certifications"`
	FarmEstablishedYear sql.NullInt64   `db:"farm_established_year"`
	StatsTotalOrders    int             `db:"stats_total_orders"`
	StatsRating         float64         `db:"stats_rating"`
	StatsTotalRevenue   float64         `db:"stats_total_revenue"`
	IsActive            bool            `db:"is_active"`
	CreatedAt           string          `db:"created_at"`
	UpdatedAt           string          `db:"updated_at"`
}

func userToRow(u *model.User) *userRow {
	row := &userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if u.Phone != "" {
		row.Phone = sql.NullString{String: u.Phone, Valid: true}
	}
	if u.Avatar != "" {
		row.Avatar = sql.NullString{String: u.Avatar, Valid: true}
	}
	row.LocationLat = sql.NullFloat64{Float64: u.Location.Lat, Valid: true}
	row.LocationLng = sql.NullFloat64{Float64: u.Location.Lng, Valid: true}
	row.LocationAddress = sql.NullString{String: u.Location.Address, Valid: true}
	if u.Farm != nil {
		certs, _ := json.Marshal(u.Farm.Certifications)
		row.FarmName = sql.NullString{String: u.Farm.Name, Valid: true}
		row.FarmDescription = sql.NullString{String: u.Farm.Description, Valid: true}
		row.FarmCertifications = sql.NullString{String: string(certs), Valid: true}
		row.FarmEstablishedYear = sql.NullInt64{Int64: int64(u.Farm.EstablishedYear), Valid: true}
	}
	if u.Stats != nil {
		row.StatsTotalOrders = u.Stats.TotalOrders
		row.StatsRating = u.Stats.Rating
		row.StatsTotalRevenue = u.Stats.TotalRevenue
	}
	return row
}

func rowToUser(row *userRow) *model.User {
	createdAt, _ := time.Parse(time.RFC3339, row.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, row.UpdatedAt)

	u := &model.User{
		BaseModel: model.BaseModel{
			ID:        row.ID,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.Password,
		Role:         model.Role(row.Role),
		Phone:        row.Phone.String,
		Avatar:       row.Avatar.String,
		Location: model.Location{
			Lat:     row.LocationLat.Float64,
			Lng:     row.LocationLng.Float64,
			Address: row.LocationAddress.String,
		},
		IsActive: row.IsActive,
	}

	if u.Role == model.RoleFarmer {
		certs := []string{}
		if row.FarmCertifications.Valid && row.FarmCertifications.String != "" {
			_ = json.Unmarshal([]byte(row.FarmCertifications.String), &certs)
		}
		u.Farm = &model.Farm{
			Name:            row.FarmName.String,
			Description:     row.FarmDescription.String,
			Certifications:  certs,
			EstablishedYear: int(row.FarmEstablishedYear.Int64),
		}
		u.Stats = &model.FarmerStats{
			TotalOrders:  row.StatsTotalOrders,
			Rating:       row.StatsRating,
			TotalRevenue: row.StatsTotalRevenue,
		}
	}
	return u
}

func (r *SQLiteRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password, role, phone, avatar,
			location_lat, location_lng, location_address,
			farm_name, farm_description, farm_certifications, farm_established_year,
			stats_total_orders, stats_rating, stats_total_revenue,
			is_active, created_at, updated_at
		)
		VALUES (
			:id, :name, :email, :password, :role, :phone, :avatar,
			:location_lat, :location_lng, :location_address,
			:farm_name, :farm_description, :farm_certifications, :farm_established_year,
			:stats_total_orders, :stats_rating, :stats_total_revenue,
			:is_active, :created_at, :updated_at
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, userToRow(u))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return user.ErrEmailTaken
	}
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var row userRow
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToUser(&row), nil
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var row userRow
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM users WHERE email = ? LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToUser(&row), nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	err := r.DB.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, len(rows))
	for i := range rows {
		users[i] = *rowToUser(&rows[i])
	}
	return users, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, u *model.User) error {
	query := `
		UPDATE users
		SET name = :name,
			phone = :phone,
			avatar = :avatar,
			location_lat = :location_lat,
			location_lng = :location_lng,
			location_address = :location_address,
			farm_name = :farm_name,
			farm_description = :farm_description,
			farm_certifications = :farm_certifications,
			farm_established_year = :farm_established_year,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := r.DB.NamedExecContext(ctx, query, userToRow(u))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}
