// Package storetest provides in-memory repository implementations that
// mirror the Postgres repositories' contracts: monotonic ids, parent
// existence checks atomic with inserts, and reject-on-children deletes.
// Usecase and handler tests run against it instead of a live database.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/quickserve/catalog-service/internal/category"
	"github.com/quickserve/catalog-service/internal/item"
	"github.com/quickserve/catalog-service/internal/model"
	"github.com/quickserve/catalog-service/internal/subcategory"
)

type Store struct {
	mu sync.Mutex

	nextCategoryID    int64
	nextSubCategoryID int64
	nextItemID        int64

	categories    map[int64]model.Category
	subCategories map[int64]model.SubCategory
	items         map[int64]model.Item
}

func NewStore() *Store {
	return &Store{
		categories:    map[int64]model.Category{},
		subCategories: map[int64]model.SubCategory{},
		items:         map[int64]model.Item{},
	}
}

func (s *Store) Categories() category.Repository       { return &categoryRepo{s} }
func (s *Store) SubCategories() subcategory.Repository { return &subCategoryRepo{s} }
func (s *Store) Items() item.Repository                { return &itemRepo{s} }

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCategoryID++
	c.ID = r.s.nextCategoryID
	r.s.categories[c.ID] = stripCategory(*c)
	return nil
}

func (r *categoryRepo) FindByID(_ context.Context, id int64) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) FindByIDs(_ context.Context, ids []int64) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Category
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok {
			out = append(out, c)
		}
	}
	sortByID(out, func(c model.Category) int64 { return c.ID })
	return out, nil
}

func (r *categoryRepo) FindAll(_ context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Category
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sortByID(out, func(c model.Category) int64 { return c.ID })
	return out, nil
}

func (r *categoryRepo) Update(_ context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = stripCategory(*c)
	return nil
}

func (r *categoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subCategories {
		if sub.CategoryID == id {
			return model.ErrCategoryHasChildren
		}
	}
	for _, it := range r.s.items {
		if it.CategoryID != nil && *it.CategoryID == id {
			return model.ErrCategoryHasChildren
		}
	}
	if _, ok := r.s.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(r.s.categories, id)
	return nil
}

type subCategoryRepo struct{ s *Store }

func (r *subCategoryRepo) Create(_ context.Context, sub *model.SubCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[sub.CategoryID]; !ok {
		return model.ErrCategoryNotFound
	}
	r.s.nextSubCategoryID++
	sub.ID = r.s.nextSubCategoryID
	r.s.subCategories[sub.ID] = stripSubCategory(*sub)
	return nil
}

func (r *subCategoryRepo) FindByID(_ context.Context, id int64) (*model.SubCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subCategories[id]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (r *subCategoryRepo) FindByIDs(_ context.Context, ids []int64) ([]model.SubCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.SubCategory
	for _, id := range ids {
		if sub, ok := r.s.subCategories[id]; ok {
			out = append(out, sub)
		}
	}
	sortByID(out, func(sub model.SubCategory) int64 { return sub.ID })
	return out, nil
}

func (r *subCategoryRepo) FindAll(_ context.Context) ([]model.SubCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.SubCategory
	for _, sub := range r.s.subCategories {
		out = append(out, sub)
	}
	sortByID(out, func(sub model.SubCategory) int64 { return sub.ID })
	return out, nil
}

func (r *subCategoryRepo) FindByCategoryID(_ context.Context, categoryID int64) ([]model.SubCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.SubCategory
	for _, sub := range r.s.subCategories {
		if sub.CategoryID == categoryID {
			out = append(out, sub)
		}
	}
	sortByID(out, func(sub model.SubCategory) int64 { return sub.ID })
	return out, nil
}

func (r *subCategoryRepo) Update(_ context.Context, sub *model.SubCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.subCategories[sub.ID] = stripSubCategory(*sub)
	return nil
}

func (r *subCategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.SubCategoryID != nil && *it.SubCategoryID == id {
			return model.ErrSubCategoryHasItems
		}
	}
	if _, ok := r.s.subCategories[id]; !ok {
		return model.ErrSubCategoryNotFound
	}
	delete(r.s.subCategories, id)
	return nil
}

type itemRepo struct{ s *Store }

func (r *itemRepo) Create(_ context.Context, it *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it.CategoryID != nil {
		if _, ok := r.s.categories[*it.CategoryID]; !ok {
			return model.ErrCategoryNotFound
		}
	}
	if it.SubCategoryID != nil {
		if _, ok := r.s.subCategories[*it.SubCategoryID]; !ok {
			return model.ErrSubCategoryNotFound
		}
	}
	r.s.nextItemID++
	it.ID = r.s.nextItemID
	r.s.items[it.ID] = stripItem(*it)
	return nil
}

func (r *itemRepo) FindByID(_ context.Context, id int64) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *itemRepo) FindAll(_ context.Context) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Item
	for _, it := range r.s.items {
		out = append(out, it)
	}
	sortByID(out, func(it model.Item) int64 { return it.ID })
	return out, nil
}

func (r *itemRepo) FindByCategoryID(_ context.Context, categoryID int64) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Item
	for _, it := range r.s.items {
		if it.CategoryID != nil && *it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	sortByID(out, func(it model.Item) int64 { return it.ID })
	return out, nil
}

func (r *itemRepo) FindBySubCategoryIDs(_ context.Context, subCategoryIDs []int64) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := map[int64]bool{}
	for _, id := range subCategoryIDs {
		wanted[id] = true
	}
	var out []model.Item
	for _, it := range r.s.items {
		if it.SubCategoryID != nil && wanted[*it.SubCategoryID] {
			out = append(out, it)
		}
	}
	sortByID(out, func(it model.Item) int64 { return it.ID })
	return out, nil
}

func (r *itemRepo) Update(_ context.Context, it *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[it.ID] = stripItem(*it)
	return nil
}

func (r *itemRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return model.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *itemRepo) Search(_ context.Context, query string) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(query)
	var out []model.Item
	for _, it := range r.s.items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	sortByID(out, func(it model.Item) int64 { return it.ID })
	return out, nil
}

// stored rows never carry assembled associations

func stripCategory(c model.Category) model.Category {
	c.SubCategories = nil
	c.Items = nil
	return c
}

func stripSubCategory(sub model.SubCategory) model.SubCategory {
	sub.Category = nil
	sub.Items = nil
	return sub
}

func stripItem(it model.Item) model.Item {
	it.Category = nil
	it.SubCategory = nil
	return it
}

func sortByID[T any](s []T, id func(T) int64) {
	sort.Slice(s, func(i, j int) bool { return id(s[i]) < id(s[j]) })
}
