package model

type Item struct {
	BaseModel
	CategoryID       *int64   `db:"category_id" json:"categoryId"`         // Nullable
	SubCategoryID    *int64   `db:"sub_category_id" json:"subCategoryId"`  // Nullable
	Name             string   `db:"name" json:"name"`
	Image            *string  `db:"image" json:"image"`
	Description      *string  `db:"description" json:"description"`
	TaxApplicability bool     `db:"tax_applicability" json:"taxApplicability"`
	Tax              *float64 `db:"tax" json:"tax"`
	BaseAmount       float64  `db:"base_amount" json:"baseAmount"`
	Discount         float64  `db:"discount" json:"discount"`
	TotalAmount      float64  `db:"total_amount" json:"totalAmount"` // caller-supplied, never derived

	Category    *Category    `db:"-" json:"category,omitempty"`    // joined data
	SubCategory *SubCategory `db:"-" json:"subCategory,omitempty"` // joined data
}
