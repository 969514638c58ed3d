package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/item/handler"
	"github.com/quickserve/catalog-service/internal/item/usecase"
	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/storetest"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newServer() (*echo.Echo, *storetest.Store) {
	store := storetest.NewStore()
	uc := usecase.NewItemUseCase(store.Items(), store.Categories(), store.SubCategories(), nil, nil, zap.NewNop())

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	handler.NewItemHandler(uc, zap.NewNop()).MapRoutes(e)
	return e, store
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedHierarchy(c *qt.C, store *storetest.Store) (catID, subID int64) {
	ctx := context.Background()
	cat := &model.Category{Name: "Mains"}
	c.Assert(store.Categories().Create(ctx, cat), qt.IsNil)
	sub := &model.SubCategory{CategoryID: cat.ID, Name: "Curries"}
	c.Assert(store.SubCategories().Create(ctx, sub), qt.IsNil)
	return cat.ID, sub.ID
}

func TestCreateItemEndpoint(t *testing.T) {
	c := qt.New(t)
	e, store := newServer()
	seedHierarchy(c, store)

	rec := do(e, http.MethodPost, "/items",
		`{"name":"Paneer Tikka","categoryId":1,"subCategoryId":1,"baseAmount":250,"discount":25,"totalAmount":225}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)

	var got model.Item
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &got), qt.IsNil)
	c.Assert(got.ID, qt.Equals, int64(1))
	c.Assert(got.TotalAmount, qt.Equals, 225.0)
}

func TestCreateItemWithoutParents(t *testing.T) {
	c := qt.New(t)
	e, _ := newServer()

	rec := do(e, http.MethodPost, "/items",
		`{"name":"Standalone","baseAmount":90,"totalAmount":90}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)
}

func TestCreateItemMissingParent(t *testing.T) {
	c := qt.New(t)
	e, _ := newServer()

	rec := do(e, http.MethodPost, "/items",
		`{"name":"Orphan","categoryId":9,"baseAmount":50,"totalAmount":50}`)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
	c.Assert(rec.Body.String(), qt.JSONEquals, map[string]string{"error": "category not found"})
}

func TestCreateItemValidation(t *testing.T) {
	c := qt.New(t)
	e, _ := newServer()

	rec := do(e, http.MethodPost, "/items", `{"name":"Bad","baseAmount":-5,"totalAmount":10}`)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	rec = do(e, http.MethodPost, "/items", `{"baseAmount":10,"totalAmount":10}`)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}

func TestGetItemEndpoint(t *testing.T) {
	c := qt.New(t)
	e, store := newServer()
	seedHierarchy(c, store)

	rec := do(e, http.MethodPost, "/items",
		`{"name":"Dal","categoryId":1,"subCategoryId":1,"baseAmount":120,"totalAmount":120}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)

	rec = do(e, http.MethodGet, "/items/1", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var got model.Item
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &got), qt.IsNil)
	c.Assert(got.Category, qt.Not(qt.IsNil))
	c.Assert(got.Category.Name, qt.Equals, "Mains")
	c.Assert(got.SubCategory, qt.Not(qt.IsNil))
	c.Assert(got.SubCategory.Name, qt.Equals, "Curries")

	rec = do(e, http.MethodGet, "/items/5", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestUpdateItemEndpoint(t *testing.T) {
	c := qt.New(t)
	e, store := newServer()
	seedHierarchy(c, store)

	rec := do(e, http.MethodPost, "/items",
		`{"name":"Dal","description":"Yellow lentils","categoryId":1,"baseAmount":120,"totalAmount":120}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)

	rec = do(e, http.MethodPut, "/items/1", `{"name":"Dal Tadka","baseAmount":140,"totalAmount":140}`)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var got model.Item
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &got), qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Dal Tadka")
	c.Assert(got.Description, qt.IsNil)
	c.Assert(got.CategoryID, qt.Not(qt.IsNil))
	c.Assert(*got.CategoryID, qt.Equals, int64(1))
}

func TestDeleteItemEndpoint(t *testing.T) {
	c := qt.New(t)
	e, _ := newServer()

	rec := do(e, http.MethodPost, "/items", `{"name":"Dal","baseAmount":120,"totalAmount":120}`)
	c.Assert(rec.Code, qt.Equals, http.StatusCreated)

	rec = do(e, http.MethodDelete, "/items/1", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNoContent)

	rec = do(e, http.MethodDelete, "/items/1", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestSearchItemsEndpoint(t *testing.T) {
	c := qt.New(t)
	e, _ := newServer()

	for _, body := range []string{
		`{"name":"Blue Shirt","baseAmount":500,"totalAmount":500}`,
		`{"name":"Red Scarf","baseAmount":200,"totalAmount":200}`,
	} {
		rec := do(e, http.MethodPost, "/items", body)
		c.Assert(rec.Code, qt.Equals, http.StatusCreated)
	}

	rec := do(e, http.MethodGet, "/items/search?query=shirt", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	var items []model.Item
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &items), qt.IsNil)
	c.Assert(items, qt.HasLen, 1)
	c.Assert(items[0].Name, qt.Equals, "Blue Shirt")

	rec = do(e, http.MethodGet, "/items/search?query=jacket", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(strings.TrimSpace(rec.Body.String()), qt.Equals, "[]")

	rec = do(e, http.MethodGet, "/items/search", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &items), qt.IsNil)
	c.Assert(items, qt.HasLen, 2)
}
