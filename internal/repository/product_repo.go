package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/TanzilStore/store_api/internal/models"
)

// ProductRepository handles data access for products.
//
// List filtering, sorting, and pagination are deliberately NOT pushed
// into SQL: every list view runs through the shared query engine over a
// full collection snapshot, so the same code path serves DB-backed and
// legacy-imported data.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns the full product collection, newest first.
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	const q = `SELECT * FROM products ORDER BY created_at DESC, id`
	products := []models.Product{}
	if err := r.db.Select(&products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `
        INSERT INTO products (id, name, name_ar, description, description_ar, price, original_price,
            category_id, sub_category_id, images, rating, reviews_count, stock,
            is_featured, is_best_seller, is_on_sale, discount_percentage, sale_end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		product.ID,
		product.Name,
		product.NameAr,
		product.Description,
		product.DescriptionAr,
		product.Price,
		product.OriginalPrice,
		product.CategoryID,
		product.SubCategoryID,
		product.Images,
		product.Rating,
		product.ReviewsCount,
		product.Stock,
		product.IsFeatured,
		product.IsBestSeller,
		product.IsOnSale,
		product.DiscountPercentage,
		product.SaleEndDate,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// Update replaces an existing product record wholesale.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `
        UPDATE products
        SET name = $2, name_ar = $3, description = $4, description_ar = $5,
            price = $6, original_price = $7, category_id = $8, sub_category_id = $9,
            images = $10, rating = $11, reviews_count = $12, stock = $13,
            is_featured = $14, is_best_seller = $15, is_on_sale = $16,
            discount_percentage = $17, sale_end_date = $18, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		product.ID,
		product.Name,
		product.NameAr,
		product.Description,
		product.DescriptionAr,
		product.Price,
		product.OriginalPrice,
		product.CategoryID,
		product.SubCategoryID,
		product.Images,
		product.Rating,
		product.ReviewsCount,
		product.Stock,
		product.IsFeatured,
		product.IsBestSeller,
		product.IsOnSale,
		product.DiscountPercentage,
		product.SaleEndDate,
	).Scan(&product.UpdatedAt)
}

// Upsert inserts or updates a product by id. Used by the catalog import.
func (r *ProductRepository) Upsert(product *models.Product) error {
	const q = `
        INSERT INTO products (id, name, name_ar, description, description_ar, price, original_price,
            category_id, sub_category_id, images, rating, reviews_count, stock,
            is_featured, is_best_seller, is_on_sale, discount_percentage, sale_end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            name_ar = EXCLUDED.name_ar,
            description = EXCLUDED.description,
            description_ar = EXCLUDED.description_ar,
            price = EXCLUDED.price,
            original_price = EXCLUDED.original_price,
            category_id = EXCLUDED.category_id,
            sub_category_id = EXCLUDED.sub_category_id,
            images = EXCLUDED.images,
            rating = EXCLUDED.rating,
            reviews_count = EXCLUDED.reviews_count,
            stock = EXCLUDED.stock,
            is_featured = EXCLUDED.is_featured,
            is_best_seller = EXCLUDED.is_best_seller,
            is_on_sale = EXCLUDED.is_on_sale,
            discount_percentage = EXCLUDED.discount_percentage,
            sale_end_date = EXCLUDED.sale_end_date,
            updated_at = NOW()`

	_, err := r.db.Exec(q,
		product.ID,
		product.Name,
		product.NameAr,
		product.Description,
		product.DescriptionAr,
		product.Price,
		product.OriginalPrice,
		product.CategoryID,
		product.SubCategoryID,
		product.Images,
		product.Rating,
		product.ReviewsCount,
		product.Stock,
		product.IsFeatured,
		product.IsBestSeller,
		product.IsOnSale,
		product.DiscountPercentage,
		product.SaleEndDate,
	)
	return err
}

// Delete deletes a product by id.
func (r *ProductRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM products`); err != nil {
		return 0, err
	}
	return total, nil
}

// CountByCategory returns the number of products in a category,
// including those referencing it as a subcategory.
func (r *ProductRepository) CountByCategory(categoryID string) (int, error) {
	var total int
	const q = `SELECT COUNT(1) FROM products WHERE category_id = $1 OR sub_category_id = $1`
	if err := r.db.Get(&total, q, categoryID); err != nil {
		return 0, err
	}
	return total, nil
}
