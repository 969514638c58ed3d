package subcategory

import (
	"context"

	"github.com/quickserve/catalog-service/internal/model"
)

type Repository interface {
	// Create verifies the parent category inside the same transaction as
	// the insert and fails with model.ErrCategoryNotFound when it is gone.
	Create(ctx context.Context, sub *model.SubCategory) error
	FindByID(ctx context.Context, id int64) (*model.SubCategory, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.SubCategory, error)
	FindAll(ctx context.Context) ([]model.SubCategory, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]model.SubCategory, error)
	Update(ctx context.Context, sub *model.SubCategory) error
	Delete(ctx context.Context, id int64) error
}
