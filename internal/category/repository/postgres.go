package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/quickserve/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (name, image, description, tax_applicability, tax, tax_type, created_at, updated_at)
        VALUES (:name, :image, :description, :tax_applicability, :tax, :tax_type, :created_at, :updated_at)
        RETURNING id
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, c)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&c.ID); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM categories WHERE id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	err = r.DB.SelectContext(ctx, &categories, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            image = :image,
            description = :description,
            tax_applicability = :tax_applicability,
            tax = :tax,
            tax_type = :tax_type,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

// Delete rejects the delete while subcategories or items still reference
// the category. Check and delete run in one transaction so concurrent child
// creation cannot slip in between; the RESTRICT constraints back that up.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var children int
	err = tx.GetContext(ctx, &children,
		`SELECT (SELECT count(*) FROM sub_categories WHERE category_id = $1)
              + (SELECT count(*) FROM items WHERE category_id = $1)`, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return model.ErrCategoryHasChildren
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrCategoryNotFound
	}

	return tx.Commit()
}
