package dto

type CreateSubCategoryInput struct {
	CategoryID       int64
	Name             string
	Image            *string
	Description      *string
	TaxApplicability bool
	Tax              *float64
}

// UpdateSubCategoryInput is full-replace; CategoryID is not listed because
// a subcategory cannot be reparented through updates.
type UpdateSubCategoryInput struct {
	ID               int64
	Name             string
	Image            *string
	Description      *string
	TaxApplicability bool
	Tax              *float64
}
