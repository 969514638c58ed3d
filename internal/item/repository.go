package item

import (
	"context"

	"github.com/quickserve/catalog-service/internal/model"
)

type Repository interface {
	// Create verifies any parent links inside the same transaction as the
	// insert, failing with the parent's not-found error when one is gone.
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	FindAll(ctx context.Context) ([]model.Item, error)
	// FindByCategoryID returns items attached directly to the category.
	FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Item, error)
	FindBySubCategoryIDs(ctx context.Context, subCategoryIDs []int64) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id int64) error
	// Search matches the query case-insensitively as a substring of the
	// item name. An empty query matches everything.
	Search(ctx context.Context, query string) ([]model.Item, error)
}
