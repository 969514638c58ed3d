package dto

type CreateCategoryInput struct {
	Name             string
	Image            *string
	Description      *string
	TaxApplicability bool
	Tax              *float64
	TaxType          *string
}

// UpdateCategoryInput is full-replace: every field overwrites the stored
// row, and a nil optional clears the column.
type UpdateCategoryInput struct {
	ID               int64
	Name             string
	Image            *string
	Description      *string
	TaxApplicability bool
	Tax              *float64
	TaxType          *string
}
