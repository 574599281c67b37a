package seed

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"agriconnect/internal/model"
	"agriconnect/internal/user"
)

// DefaultUsers inserts the demo accounts (admin, superadmin, customer,
// farmer) if they do not already exist. All share the password
// "password".
func DefaultUsers(ctx context.Context, repo user.Repository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	kigali := model.DefaultLocation

	defaults := []model.User{
		{
			BaseModel:    model.BaseModel{ID: "admin-1", CreatedAt: now, UpdatedAt: now},
			Name:         "Admin User",
			Email:        "admin@demo.com",
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
			Phone:        "+250788000001",
			Location:     kigali,
			IsActive:     true,
		},
		{
			BaseModel:    model.BaseModel{ID: "superadmin-1", CreatedAt: now, UpdatedAt: now},
			Name:         "Super Admin",
			Email:        "superadmin@demo.com",
			PasswordHash: string(hash),
			Role:         model.RoleSuperAdmin,
			Phone:        "+250788000000",
			Location:     kigali,
			IsActive:     true,
		},
		{
			BaseModel:    model.BaseModel{ID: "customer-1", CreatedAt: now, UpdatedAt: now},
			Name:         "Demo Customer",
			Email:        "customer@demo.com",
			PasswordHash: string(hash),
			Role:         model.RoleCustomer,
			Phone:        "+250788000002",
			Location:     kigali,
			IsActive:     true,
		},
		{
			BaseModel:    model.BaseModel{ID: "farmer-1", CreatedAt: now, UpdatedAt: now},
			Name:         "Demo Farmer",
			Email:        "farmer@demo.com",
			PasswordHash: string(hash),
			Role:         model.RoleFarmer,
			Phone:        "+250788000003",
			Location:     kigali,
			Farm: &model.Farm{
				Name:            "Demo Farm",
				Description:     "A demo farm for testing purposes",
				Certifications:  []string{"Organic Certified"},
				EstablishedYear: 2020,
			},
			Stats:    &model.FarmerStats{Rating: 4.5},
			IsActive: true,
		},
	}

	for i := range defaults {
		existing, err := repo.FindByEmail(ctx, defaults[i].Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
