package dto

type CreateItemInput struct {
	Name             string
	Image            *string
	Description      *string
	TaxApplicability bool
	Tax              *float64
	BaseAmount       float64
	Discount         float64
	TotalAmount      float64
	CategoryID       *int64
	SubCategoryID    *int64
}

// UpdateItemInput is full-replace for the attribute fields; parent links
// are immutable through updates.
type UpdateItemInput struct {
	ID               int64
	Name             string
	Image            *string
	Description      *string
	TaxApplicability bool
	Tax              *float64
	BaseAmount       float64
	Discount         float64
	TotalAmount      float64
}
