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

// Create inserts the subcategory after locking its parent row, so the
// parent cannot be deleted between the existence check and the insert.
func (r *PGRepository) Create(ctx context.Context, s *model.SubCategory) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var parentID int64
	err = tx.GetContext(ctx, &parentID, `SELECT id FROM categories WHERE id = $1 FOR KEY SHARE`, s.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrCategoryNotFound
		}
		return err
	}

	query := `
        INSERT INTO sub_categories (category_id, name, image, description, tax_applicability, tax, created_at, updated_at)
        VALUES (:category_id, :name, :image, :description, :tax_applicability, :tax, :created_at, :updated_at)
        RETURNING id
    `
	rows, err := sqlx.NamedQueryContext(ctx, tx, query, s)
	if err != nil {
		return err
	}
	if rows.Next() {
		if err := rows.Scan(&s.ID); err != nil {
			rows.Close()
			return err
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.SubCategory, error) {
	var sub model.SubCategory
	query := `SELECT * FROM sub_categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &sub, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.SubCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM sub_categories WHERE id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, err
	}
	var subs []model.SubCategory
	err = r.DB.SelectContext(ctx, &subs, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	query := `SELECT * FROM sub_categories ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &subs, query)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *PGRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	query := `SELECT * FROM sub_categories WHERE category_id = $1 ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &subs, query, categoryID)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.SubCategory) error {
	query := `
        UPDATE sub_categories
        SET name = :name,
            image = :image,
            description = :description,
            tax_applicability = :tax_applicability,
            tax = :tax,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

// Delete rejects the delete while items still reference the subcategory,
// mirroring the category policy.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var attached int
	err = tx.GetContext(ctx, &attached, `SELECT count(*) FROM items WHERE sub_category_id = $1`, id)
	if err != nil {
		return err
	}
	if attached > 0 {
		return model.ErrSubCategoryHasItems
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrSubCategoryNotFound
	}

	return tx.Commit()
}
