package model

type Category struct {
	BaseModel
	Name             string   `db:"name" json:"name"`
	Image            *string  `db:"image" json:"image"`
	Description      *string  `db:"description" json:"description"`
	TaxApplicability bool     `db:"tax_applicability" json:"taxApplicability"`
	Tax              *float64 `db:"tax" json:"tax"`
	TaxType          *string  `db:"tax_type" json:"taxType"`

	// Assembled at read time, not stored. Hierarchical fetches always set
	// these to non-nil slices so an empty collection serializes as [].
	// When a category is embedded as a parent reference they stay nil.
	SubCategories []SubCategory `db:"-" json:"subCategories"`
	Items         []Item        `db:"-" json:"items"`
}
