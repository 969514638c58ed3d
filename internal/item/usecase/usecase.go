package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/category"
	"github.com/quickserve/catalog-service/internal/events"
	"github.com/quickserve/catalog-service/internal/item"
	"github.com/quickserve/catalog-service/internal/item/dto"
	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/search"
	"github.com/quickserve/catalog-service/internal/subcategory"
)

const itemsIndex = "items"

type itemUseCase struct {
	repo    item.Repository
	catRepo category.Repository
	subRepo subcategory.Repository
	es      *search.Client
	events  *events.Publisher
	logger  *zap.Logger
}

func NewItemUseCase(repo item.Repository, catRepo category.Repository, subRepo subcategory.Repository, es *search.Client, pub *events.Publisher, log *zap.Logger) item.UseCase {
	return &itemUseCase{
		repo:    repo,
		catRepo: catRepo,
		subRepo: subRepo,
		es:      es,
		events:  pub,
		logger:  log,
	}
}

func (uc *itemUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error) {
	now := time.Now()
	it := &model.Item{
		BaseModel:        model.BaseModel{CreatedAt: now, UpdatedAt: now},
		CategoryID:       input.CategoryID,
		SubCategoryID:    input.SubCategoryID,
		Name:             input.Name,
		Image:            input.Image,
		Description:      input.Description,
		TaxApplicability: input.TaxApplicability,
		Tax:              input.Tax,
		BaseAmount:       input.BaseAmount,
		Discount:         input.Discount,
		TotalAmount:      input.TotalAmount,
	}
	if !it.TaxApplicability {
		it.Tax = nil
	}

	// The repository validates any parent links atomically with the insert.
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	go uc.events.Publish(context.Background(), events.ItemCreated, it)
	go uc.syncToElastic(context.Background(), it)

	return it, nil
}

func (uc *itemUseCase) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	it, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, model.ErrItemNotFound
	}

	if err := uc.populateParents(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (uc *itemUseCase) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	catIDs := make([]int64, 0)
	subIDs := make([]int64, 0)
	seenCat := map[int64]bool{}
	seenSub := map[int64]bool{}
	for _, it := range items {
		if it.CategoryID != nil && !seenCat[*it.CategoryID] {
			seenCat[*it.CategoryID] = true
			catIDs = append(catIDs, *it.CategoryID)
		}
		if it.SubCategoryID != nil && !seenSub[*it.SubCategoryID] {
			seenSub[*it.SubCategoryID] = true
			subIDs = append(subIDs, *it.SubCategoryID)
		}
	}

	parents, err := uc.catRepo.FindByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	catByID := map[int64]*model.Category{}
	for i := range parents {
		catByID[parents[i].ID] = &parents[i]
	}

	subs, err := uc.subRepo.FindByIDs(ctx, subIDs)
	if err != nil {
		return nil, err
	}
	subByID := map[int64]*model.SubCategory{}
	for i := range subs {
		subByID[subs[i].ID] = &subs[i]
	}

	for i := range items {
		if items[i].CategoryID != nil {
			items[i].Category = catByID[*items[i].CategoryID]
		}
		if items[i].SubCategoryID != nil {
			items[i].SubCategory = subByID[*items[i].SubCategoryID]
		}
	}
	if items == nil {
		items = []model.Item{}
	}

	return items, nil
}

func (uc *itemUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	it, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, model.ErrItemNotFound
	}

	// Full replace of the attribute fields; parent links stay as created.
	it.Name = input.Name
	it.Image = input.Image
	it.Description = input.Description
	it.TaxApplicability = input.TaxApplicability
	it.Tax = input.Tax
	it.BaseAmount = input.BaseAmount
	it.Discount = input.Discount
	it.TotalAmount = input.TotalAmount
	if !it.TaxApplicability {
		it.Tax = nil
	}
	it.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	go uc.events.Publish(context.Background(), events.ItemUpdated, it)
	go uc.syncToElastic(context.Background(), it)

	return it, nil
}

func (uc *itemUseCase) DeleteItem(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.events.Publish(context.Background(), events.ItemDeleted, map[string]int64{"id": id})
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), itemsIndex, strconv.FormatInt(id, 10)); err != nil {
				uc.logger.Error("failed to delete item from index", zap.Int64("id", id), zap.Error(err))
			}
		}()
	}

	return nil
}

// SearchItems matches the query case-insensitively as a substring of the
// item name. The Elasticsearch path is tried first when configured; any
// failure there falls back to the database, which is authoritative.
func (uc *itemUseCase) SearchItems(ctx context.Context, query string) ([]model.Item, error) {
	if query != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"wildcard": map[string]interface{}{
					"name.keyword": map[string]interface{}{
						"value":            fmt.Sprintf("*%s*", strings.ToLower(query)),
						"case_insensitive": true,
					},
				},
			},
		}
		res, err := uc.es.Search(ctx, itemsIndex, q)
		if err == nil {
			items := []model.Item{}
			for _, hit := range res.Hits.Hits {
				var it model.Item
				if err := json.Unmarshal(hit.Source, &it); err == nil {
					items = append(items, it)
				}
			}
			return items, nil
		}
		uc.logger.Error("search via index failed, falling back to database", zap.Error(err))
	}

	items, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (uc *itemUseCase) populateParents(ctx context.Context, it *model.Item) error {
	if it.CategoryID != nil {
		parent, err := uc.catRepo.FindByID(ctx, *it.CategoryID)
		if err != nil {
			return err
		}
		it.Category = parent
	}
	if it.SubCategoryID != nil {
		sub, err := uc.subRepo.FindByID(ctx, *it.SubCategoryID)
		if err != nil {
			return err
		}
		it.SubCategory = sub
	}
	return nil
}

func (uc *itemUseCase) syncToElastic(ctx context.Context, it *model.Item) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
				"description": { "type": "text" },
				"baseAmount": { "type": "double" },
				"discount": { "type": "double" },
				"totalAmount": { "type": "double" },
				"createdAt": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, itemsIndex, mapping)

	if err := uc.es.Index(ctx, itemsIndex, strconv.FormatInt(it.ID, 10), it); err != nil {
		uc.logger.Error("failed to index item", zap.Int64("id", it.ID), zap.Error(err))
	}
}
