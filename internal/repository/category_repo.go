package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/TanzilStore/store_api/internal/models"
)

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll returns the full category collection with the derived product
// count, main categories first, each group in creation order.
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	const q = `
        SELECT
            c.*,
            COALESCE(pc.product_count, 0) AS product_count
        FROM categories c
        LEFT JOIN (
            SELECT category_id, COUNT(1) AS product_count
            FROM products
            GROUP BY category_id
        ) pc ON pc.category_id = c.id
        ORDER BY c.type, c.created_at, c.id`

	categories := []models.Category{}
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetActive returns only active categories, same shape as GetAll. Used
// by the public endpoint.
func (r *CategoryRepository) GetActive() ([]models.Category, error) {
	const q = `
        SELECT
            c.*,
            COALESCE(pc.product_count, 0) AS product_count
        FROM categories c
        LEFT JOIN (
            SELECT category_id, COUNT(1) AS product_count
            FROM products
            GROUP BY category_id
        ) pc ON pc.category_id = c.id
        WHERE c.is_active = true
        ORDER BY c.type, c.created_at, c.id`

	categories := []models.Category{}
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a single category by id with its derived product count.
func (r *CategoryRepository) GetByID(id string) (*models.Category, error) {
	const q = `
        SELECT
            c.*,
            COALESCE((SELECT COUNT(1) FROM products p WHERE p.category_id = c.id), 0) AS product_count
        FROM categories c
        WHERE c.id = $1
        LIMIT 1`

	var cat models.Category
	if err := r.db.Get(&cat, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &cat, nil
}

// Create inserts a new category.
func (r *CategoryRepository) Create(cat *models.Category) error {
	const q = `
        INSERT INTO categories (id, name, name_ar, description, description_ar, icon, image, type, parent_id, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		cat.ID,
		cat.Name,
		cat.NameAr,
		cat.Description,
		cat.DescriptionAr,
		cat.Icon,
		cat.Image,
		cat.Type,
		cat.ParentID,
		cat.IsActive,
	).Scan(&cat.CreatedAt, &cat.UpdatedAt)
}

// Update replaces an existing category record.
func (r *CategoryRepository) Update(cat *models.Category) error {
	const q = `
        UPDATE categories
        SET name = $2, name_ar = $3, description = $4, description_ar = $5,
            icon = $6, image = $7, type = $8, parent_id = $9, is_active = $10,
            updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		cat.ID,
		cat.Name,
		cat.NameAr,
		cat.Description,
		cat.DescriptionAr,
		cat.Icon,
		cat.Image,
		cat.Type,
		cat.ParentID,
		cat.IsActive,
	).Scan(&cat.UpdatedAt)
}

// Upsert inserts or updates a category by id. Used by the catalog import.
func (r *CategoryRepository) Upsert(cat *models.Category) error {
	const q = `
        INSERT INTO categories (id, name, name_ar, description, description_ar, icon, image, type, parent_id, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            name_ar = EXCLUDED.name_ar,
            description = EXCLUDED.description,
            description_ar = EXCLUDED.description_ar,
            icon = EXCLUDED.icon,
            image = EXCLUDED.image,
            type = EXCLUDED.type,
            parent_id = EXCLUDED.parent_id,
            is_active = EXCLUDED.is_active,
            updated_at = NOW()`

	_, err := r.db.Exec(q,
		cat.ID,
		cat.Name,
		cat.NameAr,
		cat.Description,
		cat.DescriptionAr,
		cat.Icon,
		cat.Image,
		cat.Type,
		cat.ParentID,
		cat.IsActive,
	)
	return err
}

// Delete deletes a category by id.
func (r *CategoryRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountChildren returns the number of subcategories referencing id.
func (r *CategoryRepository) CountChildren(id string) (int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM categories WHERE parent_id = $1`, id); err != nil {
		return 0, err
	}
	return total, nil
}

// Count returns the total number of categories.
func (r *CategoryRepository) Count() (int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM categories`); err != nil {
		return 0, err
	}
	return total, nil
}
