package usecase_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/category"
	"github.com/quickserve/catalog-service/internal/category/dto"
	"github.com/quickserve/catalog-service/internal/category/usecase"
	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/storetest"
)

func newUseCase() (category.UseCase, *storetest.Store) {
	store := storetest.NewStore()
	uc := usecase.NewCategoryUseCase(store.Categories(), store.SubCategories(), store.Items(), nil, zap.NewNop())
	return uc, store
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i64Ptr(i int64) *int64     { return &i }

func TestCreateAndGetCategory(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		Name:             "Beverages",
		Image:            strPtr("https://cdn.example.com/beverages.png"),
		Description:      strPtr("Hot and cold drinks"),
		TaxApplicability: true,
		Tax:              f64Ptr(5),
		TaxType:          strPtr("percentage"),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(created.ID, qt.Equals, int64(1))
	c.Assert(created.SubCategories, qt.HasLen, 0)
	c.Assert(created.Items, qt.HasLen, 0)

	got, err := uc.GetCategory(ctx, created.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Beverages")
	c.Assert(*got.Image, qt.Equals, "https://cdn.example.com/beverages.png")
	c.Assert(*got.Description, qt.Equals, "Hot and cold drinks")
	c.Assert(got.TaxApplicability, qt.IsTrue)
	c.Assert(*got.Tax, qt.Equals, 5.0)
	c.Assert(*got.TaxType, qt.Equals, "percentage")
	c.Assert(got.SubCategories, qt.IsNotNil)
	c.Assert(got.SubCategories, qt.HasLen, 0)
	c.Assert(got.Items, qt.IsNotNil)
	c.Assert(got.Items, qt.HasLen, 0)
}

func TestCreateCategoryDropsTaxWhenNotApplicable(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()

	created, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		Name:             "Sides",
		TaxApplicability: false,
		Tax:              f64Ptr(12),
		TaxType:          strPtr("flat"),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(created.Tax, qt.IsNil)
	c.Assert(created.TaxType, qt.IsNil)
}

func TestGetCategoryNotFound(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()

	_, err := uc.GetCategory(context.Background(), 42)
	c.Assert(err, qt.ErrorIs, model.ErrCategoryNotFound)
}

func TestListCategoriesNested(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Mains"})
	c.Assert(err, qt.IsNil)

	sub := &model.SubCategory{CategoryID: cat.ID, Name: "Curries"}
	c.Assert(store.SubCategories().Create(ctx, sub), qt.IsNil)

	nested := &model.Item{SubCategoryID: i64Ptr(sub.ID), Name: "Paneer Tikka", BaseAmount: 250, TotalAmount: 250}
	c.Assert(store.Items().Create(ctx, nested), qt.IsNil)
	direct := &model.Item{CategoryID: i64Ptr(cat.ID), Name: "House Special", BaseAmount: 400, TotalAmount: 400}
	c.Assert(store.Items().Create(ctx, direct), qt.IsNil)

	categories, err := uc.ListCategories(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(categories, qt.HasLen, 1)

	got := categories[0]
	c.Assert(got.SubCategories, qt.HasLen, 1)
	c.Assert(got.SubCategories[0].Name, qt.Equals, "Curries")
	c.Assert(got.SubCategories[0].Items, qt.HasLen, 1)
	c.Assert(got.SubCategories[0].Items[0].Name, qt.Equals, "Paneer Tikka")
	c.Assert(got.Items, qt.HasLen, 1)
	c.Assert(got.Items[0].Name, qt.Equals, "House Special")
}

func TestListCategoriesEmpty(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()

	categories, err := uc.ListCategories(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(categories, qt.IsNotNil)
	c.Assert(categories, qt.HasLen, 0)
}

func TestUpdateCategoryFullReplace(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		Name:        "Starters",
		Description: strPtr("Small plates"),
		Image:       strPtr("starters.png"),
	})
	c.Assert(err, qt.IsNil)

	// Omitting description clears it; this is replace, not merge.
	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID:    created.ID,
		Name:  "Appetizers",
		Image: strPtr("appetizers.png"),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, "Appetizers")
	c.Assert(updated.Description, qt.IsNil)

	got, err := uc.GetCategory(ctx, created.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Appetizers")
	c.Assert(got.Description, qt.IsNil)
	c.Assert(*got.Image, qt.Equals, "appetizers.png")
}

func TestUpdateCategoryNotFound(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()

	_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{ID: 7, Name: "Ghost"})
	c.Assert(err, qt.ErrorIs, model.ErrCategoryNotFound)
}

func TestDeleteCategoryRejectsWhileChildrenExist(t *testing.T) {
	c := qt.New(t)
	uc, store := newUseCase()
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Desserts"})
	c.Assert(err, qt.IsNil)
	sub := &model.SubCategory{CategoryID: cat.ID, Name: "Cakes"}
	c.Assert(store.SubCategories().Create(ctx, sub), qt.IsNil)

	// Rejection is idempotent across repeated attempts.
	c.Assert(uc.DeleteCategory(ctx, cat.ID), qt.ErrorIs, model.ErrCategoryHasChildren)
	c.Assert(uc.DeleteCategory(ctx, cat.ID), qt.ErrorIs, model.ErrCategoryHasChildren)

	c.Assert(store.SubCategories().Delete(ctx, sub.ID), qt.IsNil)
	c.Assert(uc.DeleteCategory(ctx, cat.ID), qt.IsNil)
	c.Assert(uc.DeleteCategory(ctx, cat.ID), qt.ErrorIs, model.ErrCategoryNotFound)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	c := qt.New(t)
	uc, _ := newUseCase()

	c.Assert(uc.DeleteCategory(context.Background(), 99), qt.ErrorIs, model.ErrCategoryNotFound)
}
