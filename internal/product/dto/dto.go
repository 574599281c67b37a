package dto

// ProductFilters narrows a product listing. Listings only ever serve
// active products; farmer scoping is the single supported foreign-key
// filter.
type ProductFilters struct {
	FarmerID string
}
