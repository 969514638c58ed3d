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

// Create inserts the item after locking whichever parent rows it links,
// so neither parent can be deleted between check and insert. The two
// links are independent and never cross-validated.
func (r *PGRepository) Create(ctx context.Context, it *model.Item) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if it.CategoryID != nil {
		var id int64
		err = tx.GetContext(ctx, &id, `SELECT id FROM categories WHERE id = $1 FOR KEY SHARE`, *it.CategoryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.ErrCategoryNotFound
			}
			return err
		}
	}
	if it.SubCategoryID != nil {
		var id int64
		err = tx.GetContext(ctx, &id, `SELECT id FROM sub_categories WHERE id = $1 FOR KEY SHARE`, *it.SubCategoryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.ErrSubCategoryNotFound
			}
			return err
		}
	}

	query := `
        INSERT INTO items (
            category_id, sub_category_id, name, image, description,
            tax_applicability, tax, base_amount, discount, total_amount,
            created_at, updated_at
        )
        VALUES (
            :category_id, :sub_category_id, :name, :image, :description,
            :tax_applicability, :tax, :base_amount, :discount, :total_amount,
            :created_at, :updated_at
        )
        RETURNING id
    `
	rows, err := sqlx.NamedQueryContext(ctx, tx, query, it)
	if err != nil {
		return err
	}
	if rows.Next() {
		if err := rows.Scan(&it.ID); err != nil {
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

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	query := `SELECT * FROM items WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &it, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	query := `SELECT * FROM items ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Item, error) {
	var items []model.Item
	query := `SELECT * FROM items WHERE category_id = $1 ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &items, query, categoryID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindBySubCategoryIDs(ctx context.Context, subCategoryIDs []int64) ([]model.Item, error) {
	if len(subCategoryIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM items WHERE sub_category_id IN (?) ORDER BY id ASC`, subCategoryIDs)
	if err != nil {
		return nil, err
	}
	var items []model.Item
	err = r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) Update(ctx context.Context, it *model.Item) error {
	query := `
        UPDATE items
        SET name = :name,
            image = :image,
            description = :description,
            tax_applicability = :tax_applicability,
            tax = :tax,
            base_amount = :base_amount,
            discount = :discount,
            total_amount = :total_amount,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, it)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *PGRepository) Search(ctx context.Context, query string) ([]model.Item, error) {
	items := []model.Item{}
	if query == "" {
		// Contains-empty-string matches everything.
		return r.FindAll(ctx)
	}
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM items WHERE name ILIKE $1 ORDER BY id ASC`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	return items, nil
}
