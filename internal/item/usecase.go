package item

import (
	"context"

	"github.com/quickserve/catalog-service/internal/item/dto"
	"github.com/quickserve/catalog-service/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, query string) ([]model.Item, error)
}
