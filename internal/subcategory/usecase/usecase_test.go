package usecase_test

import (
	"context"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/storetest"
	"github.com/quickserve/catalog-service/internal/subcategory"
	"github.com/quickserve/catalog-service/internal/subcategory/dto"
	"github.com/quickserve/catalog-service/internal/subcategory/usecase"
)

func newUseCase() (subcategory.UseCase, *storetest.Store) {
	store := storetest.NewStore()
	uc := usecase.NewSubCategoryUseCase(store.SubCategories(), store.Categories(), store.Items(), nil, zap.NewNop())
	return uc, store
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i64Ptr(i int64) *int64     { return &i }

func seedCategory(c *qt.C, store *storetest.Store, name string) *model.Category {
	cat := &model.Category{Name: name}
	c.Assert(store.Categories().Create(context.Background(), cat), qt.IsNil)
	return cat
}

func TestCreateSubCategoryMissingParent(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateSubCategory(ctx, &dto.CreateSubCategoryInput{CategoryID: 404, Name: "Orphan"})
	c.Assert(err, qt.ErrorIs, model.ErrCategoryNotFound)

	// Nothing persisted on the failed create.
	subs, err := store.SubCategories().FindAll(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, 0)
}

func TestCreateAndGetSubCategory(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()
	cat := seedCategory(c, store, "Drinks")

	created, err := uc.CreateSubCategory(ctx, &dto.CreateSubCategoryInput{
		CategoryID:       cat.ID,
		Name:             "Smoothies",
		Description:      strPtr("Blended fruit"),
		TaxApplicability: true,
		Tax:              f64Ptr(10),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(created.ID, qt.Equals, int64(1))
	c.Assert(created.CategoryID, qt.Equals, cat.ID)
	c.Assert(created.Items, qt.HasLen, 0)

	got, err := uc.GetSubCategory(ctx, created.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Smoothies")
	c.Assert(got.Category, qt.IsNotNil)
	c.Assert(got.Category.ID, qt.Equals, cat.ID)
	c.Assert(got.Items, qt.IsNotNil)
	c.Assert(got.Items, qt.HasLen, 0)
}

func TestConcurrentCreateSubCategories(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()
	cat := seedCategory(c, store, "Snacks")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateSubCategory(ctx, &dto.CreateSubCategoryInput{
				CategoryID: cat.ID,
				Name:       "Batch",
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		c.Assert(err, qt.IsNil)
	}

	subs, err := uc.ListSubCategories(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, workers)

	seen := map[int64]bool{}
	for _, s := range subs {
		c.Assert(seen[s.ID], qt.IsFalse)
		seen[s.ID] = true
	}
}

func TestListSubCategoriesPopulated(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()
	cat := seedCategory(c, store, "Breads")

	created, err := uc.CreateSubCategory(ctx, &dto.CreateSubCategoryInput{CategoryID: cat.ID, Name: "Flatbreads"})
	c.Assert(err, qt.IsNil)

	it := &model.Item{SubCategoryID: i64Ptr(created.ID), Name: "Naan", BaseAmount: 60, TotalAmount: 60}
	c.Assert(store.Items().Create(ctx, it), qt.IsNil)

	subs, err := uc.ListSubCategories(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, 1)
	c.Assert(subs[0].Category, qt.IsNotNil)
	c.Assert(subs[0].Category.Name, qt.Equals, "Breads")
	c.Assert(subs[0].Items, qt.HasLen, 1)
	c.Assert(subs[0].Items[0].Name, qt.Equals, "Naan")
}

func TestUpdateSubCategoryFullReplace(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()
	cat := seedCategory(c, store, "Soups")

	created, err := uc.CreateSubCategory(ctx, &dto.CreateSubCategoryInput{
		CategoryID: cat.ID,
		Name:       "Broths",
		Image:      strPtr("broths.png"),
	})
	c.Assert(err, qt.IsNil)

	updated, err := uc.UpdateSubCategory(ctx, &dto.UpdateSubCategoryInput{
		ID:   created.ID,
		Name: "Clear Soups",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, "Clear Soups")
	c.Assert(updated.Image, qt.IsNil)
	// Parent link survives full-replace updates.
	c.Assert(updated.CategoryID, qt.Equals, cat.ID)
}

func TestUpdateSubCategoryNotFound(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()

	_, err := uc.UpdateSubCategory(context.Background(), &dto.UpdateSubCategoryInput{ID: 9, Name: "Ghost"})
	c.Assert(err, qt.ErrorIs, model.ErrSubCategoryNotFound)
}

func TestDeleteSubCategoryRejectsWhileItemsExist(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()
	cat := seedCategory(c, store, "Grill")

	created, err := uc.CreateSubCategory(ctx, &dto.CreateSubCategoryInput{CategoryID: cat.ID, Name: "Kebabs"})
	c.Assert(err, qt.IsNil)

	it := &model.Item{SubCategoryID: i64Ptr(created.ID), Name: "Seekh Kebab", BaseAmount: 180, TotalAmount: 180}
	c.Assert(store.Items().Create(ctx, it), qt.IsNil)

	c.Assert(uc.DeleteSubCategory(ctx, created.ID), qt.ErrorIs, model.ErrSubCategoryHasItems)

	c.Assert(store.Items().Delete(ctx, it.ID), qt.IsNil)
	c.Assert(uc.DeleteSubCategory(ctx, created.ID), qt.IsNil)
	c.Assert(uc.DeleteSubCategory(ctx, created.ID), qt.ErrorIs, model.ErrSubCategoryNotFound)
}
