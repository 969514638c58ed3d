package model

import "time"

// BaseModel carries the columns shared by every catalog table. IDs are
// assigned by the database (identity columns) and are never reused.
type BaseModel struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
