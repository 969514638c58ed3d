package model

type SubCategory struct {
	BaseModel
	CategoryID       int64    `db:"category_id" json:"categoryId"`
	Name             string   `db:"name" json:"name"`
	Image            *string  `db:"image" json:"image"`
	Description      *string  `db:"description" json:"description"`
	TaxApplicability bool     `db:"tax_applicability" json:"taxApplicability"`
	Tax              *float64 `db:"tax" json:"tax"`

	Category *Category `db:"-" json:"category,omitempty"` // joined data
	Items    []Item    `db:"-" json:"items"`
}
