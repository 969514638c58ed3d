package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/category"
	"github.com/quickserve/catalog-service/internal/events"
	"github.com/quickserve/catalog-service/internal/item"
	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/subcategory"
	"github.com/quickserve/catalog-service/internal/subcategory/dto"
)

type subCategoryUseCase struct {
	repo     subcategory.Repository
	catRepo  category.Repository
	itemRepo item.Repository
	events   *events.Publisher
	logger   *zap.Logger
}

func NewSubCategoryUseCase(repo subcategory.Repository, catRepo category.Repository, itemRepo item.Repository, pub *events.Publisher, log *zap.Logger) subcategory.UseCase {
	return &subCategoryUseCase{
		repo:     repo,
		catRepo:  catRepo,
		itemRepo: itemRepo,
		events:   pub,
		logger:   log,
	}
}

func (uc *subCategoryUseCase) CreateSubCategory(ctx context.Context, input *dto.CreateSubCategoryInput) (*model.SubCategory, error) {
	now := time.Now()
	sub := &model.SubCategory{
		BaseModel:        model.BaseModel{CreatedAt: now, UpdatedAt: now},
		CategoryID:       input.CategoryID,
		Name:             input.Name,
		Image:            input.Image,
		Description:      input.Description,
		TaxApplicability: input.TaxApplicability,
		Tax:              input.Tax,
	}
	if !sub.TaxApplicability {
		sub.Tax = nil
	}

	// The repository checks the parent and inserts atomically.
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	sub.Items = []model.Item{}

	go uc.events.Publish(context.Background(), events.SubCategoryCreated, sub)

	return sub, nil
}

func (uc *subCategoryUseCase) GetSubCategory(ctx context.Context, id int64) (*model.SubCategory, error) {
	sub, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, model.ErrSubCategoryNotFound
	}

	parent, err := uc.catRepo.FindByID(ctx, sub.CategoryID)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.FindBySubCategoryIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	sub.Category = parent
	sub.Items = orEmptyItems(items)

	return sub, nil
}

func (uc *subCategoryUseCase) ListSubCategories(ctx context.Context) ([]model.SubCategory, error) {
	subs, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	catIDs := make([]int64, 0, len(subs))
	seen := map[int64]bool{}
	subIDs := make([]int64, len(subs))
	for i, s := range subs {
		subIDs[i] = s.ID
		if !seen[s.CategoryID] {
			seen[s.CategoryID] = true
			catIDs = append(catIDs, s.CategoryID)
		}
	}

	parents, err := uc.catRepo.FindByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	parentByID := map[int64]*model.Category{}
	for i := range parents {
		parentByID[parents[i].ID] = &parents[i]
	}

	items, err := uc.itemRepo.FindBySubCategoryIDs(ctx, subIDs)
	if err != nil {
		return nil, err
	}
	itemsBySub := map[int64][]model.Item{}
	for _, it := range items {
		if it.SubCategoryID != nil {
			itemsBySub[*it.SubCategoryID] = append(itemsBySub[*it.SubCategoryID], it)
		}
	}

	for i := range subs {
		subs[i].Category = parentByID[subs[i].CategoryID]
		subs[i].Items = orEmptyItems(itemsBySub[subs[i].ID])
	}
	if subs == nil {
		subs = []model.SubCategory{}
	}

	return subs, nil
}

func (uc *subCategoryUseCase) UpdateSubCategory(ctx context.Context, input *dto.UpdateSubCategoryInput) (*model.SubCategory, error) {
	sub, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, model.ErrSubCategoryNotFound
	}

	// Full replace of the attribute fields. CategoryID never changes here.
	sub.Name = input.Name
	sub.Image = input.Image
	sub.Description = input.Description
	sub.TaxApplicability = input.TaxApplicability
	sub.Tax = input.Tax
	if !sub.TaxApplicability {
		sub.Tax = nil
	}
	sub.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	go uc.events.Publish(context.Background(), events.SubCategoryUpdated, sub)

	return sub, nil
}

func (uc *subCategoryUseCase) DeleteSubCategory(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.events.Publish(context.Background(), events.SubCategoryDeleted, map[string]int64{"id": id})

	return nil
}

func orEmptyItems(items []model.Item) []model.Item {
	if items == nil {
		return []model.Item{}
	}
	return items
}
