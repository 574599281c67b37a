package model

type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type User struct {
	BaseModel
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         Role     `json:"role"`
	Phone        string   `json:"phone"`
	Avatar       string   `json:"avatar,omitempty"`
	Location     Location `json:"location"`
	// Farm and Stats are populated for farmers only.
	Farm     *Farm        `json:"farm,omitempty"`
	Stats    *FarmerStats `json:"stats,omitempty"`
	IsActive bool         `json:"isActive"`
}

type Farm struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Certifications  []string `json:"certifications"`
	EstablishedYear int      `json:"establishedYear"`
}

type FarmerStats struct {
	TotalOrders  int     `json:"totalOrders"`
	Rating       float64 `json:"rating"`
	TotalRevenue float64 `json:"totalRevenue"`
}
