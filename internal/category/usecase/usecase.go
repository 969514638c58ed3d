package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/category"
	"github.com/quickserve/catalog-service/internal/category/dto"
	"github.com/quickserve/catalog-service/internal/events"
	"github.com/quickserve/catalog-service/internal/item"
	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/subcategory"
)

type categoryUseCase struct {
	repo     category.Repository
	subRepo  subcategory.Repository
	itemRepo item.Repository
	events   *events.Publisher
	logger   *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, subRepo subcategory.Repository, itemRepo item.Repository, pub *events.Publisher, log *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		subRepo:  subRepo,
		itemRepo: itemRepo,
		events:   pub,
		logger:   log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	now := time.Now()
	cat := &model.Category{
		BaseModel:        model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:             input.Name,
		Image:            input.Image,
		Description:      input.Description,
		TaxApplicability: input.TaxApplicability,
		Tax:              input.Tax,
		TaxType:          input.TaxType,
	}
	// Tax fields are meaningful only when tax applies.
	if !cat.TaxApplicability {
		cat.Tax = nil
		cat.TaxType = nil
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	// A fresh category owns nothing yet.
	cat.SubCategories = []model.SubCategory{}
	cat.Items = []model.Item{}

	go uc.events.Publish(context.Background(), events.CategoryCreated, cat)

	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, model.ErrCategoryNotFound
	}

	subs, err := uc.subRepo.FindByCategoryID(ctx, id)
	if err != nil {
		return nil, err
	}
	directItems, err := uc.itemRepo.FindByCategoryID(ctx, id)
	if err != nil {
		return nil, err
	}

	subIDs := make([]int64, len(subs))
	for i, s := range subs {
		subIDs[i] = s.ID
	}
	subItems, err := uc.itemRepo.FindBySubCategoryIDs(ctx, subIDs)
	if err != nil {
		return nil, err
	}

	itemsBySub := groupItemsBySubCategory(subItems)
	for i := range subs {
		subs[i].Items = orEmptyItems(itemsBySub[subs[i].ID])
	}

	cat.SubCategories = orEmptySubCategories(subs)
	cat.Items = orEmptyItems(directItems)

	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := uc.subRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// Items attach under every parent their foreign keys name: directly
	// under the category, and under the subcategory, independently.
	itemsBySub := groupItemsBySubCategory(items)
	itemsByCat := map[int64][]model.Item{}
	for _, it := range items {
		if it.CategoryID != nil {
			itemsByCat[*it.CategoryID] = append(itemsByCat[*it.CategoryID], it)
		}
	}

	subsByCat := map[int64][]model.SubCategory{}
	for _, s := range subs {
		s.Items = orEmptyItems(itemsBySub[s.ID])
		subsByCat[s.CategoryID] = append(subsByCat[s.CategoryID], s)
	}

	for i := range categories {
		categories[i].SubCategories = orEmptySubCategories(subsByCat[categories[i].ID])
		categories[i].Items = orEmptyItems(itemsByCat[categories[i].ID])
	}
	if categories == nil {
		categories = []model.Category{}
	}

	return categories, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, model.ErrCategoryNotFound
	}

	// Full replace: every attribute is overwritten; nil optionals clear
	// the stored value.
	cat.Name = input.Name
	cat.Image = input.Image
	cat.Description = input.Description
	cat.TaxApplicability = input.TaxApplicability
	cat.Tax = input.Tax
	cat.TaxType = input.TaxType
	if !cat.TaxApplicability {
		cat.Tax = nil
		cat.TaxType = nil
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	go uc.events.Publish(context.Background(), events.CategoryUpdated, cat)

	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.events.Publish(context.Background(), events.CategoryDeleted, map[string]int64{"id": id})

	return nil
}

func groupItemsBySubCategory(items []model.Item) map[int64][]model.Item {
	grouped := map[int64][]model.Item{}
	for _, it := range items {
		if it.SubCategoryID != nil {
			grouped[*it.SubCategoryID] = append(grouped[*it.SubCategoryID], it)
		}
	}
	return grouped
}

func orEmptyItems(items []model.Item) []model.Item {
	if items == nil {
		return []model.Item{}
	}
	return items
}

func orEmptySubCategories(subs []model.SubCategory) []model.SubCategory {
	if subs == nil {
		return []model.SubCategory{}
	}
	return subs
}
