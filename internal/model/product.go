package model

type Category string

const (
	CategoryChicken Category = "chicken"
	CategoryEggs    Category = "eggs"
	CategoryManure  Category = "manure"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryChicken, CategoryEggs, CategoryManure:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	FarmerID    string   `json:"farmerId"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	Quality     Quality  `json:"quality"`
	Location    Location `json:"location"`
	IsActive    bool     `json:"isActive"`
}

type Quality struct {
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"reviews"`
	Organic   bool    `json:"organic"`
	Freshness int     `json:"freshness"`
}
