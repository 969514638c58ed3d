package subcategory

import (
	"context"

	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/subcategory/dto"
)

type UseCase interface {
	CreateSubCategory(ctx context.Context, input *dto.CreateSubCategoryInput) (*model.SubCategory, error)
	GetSubCategory(ctx context.Context, id int64) (*model.SubCategory, error)
	ListSubCategories(ctx context.Context) ([]model.SubCategory, error)
	UpdateSubCategory(ctx context.Context, input *dto.UpdateSubCategoryInput) (*model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id int64) error
}
