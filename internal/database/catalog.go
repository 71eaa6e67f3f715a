package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

type ProductQueries struct {
	db *sql.DB
}

func NewProductQueries(db *sql.DB) *ProductQueries {
	return &ProductQueries{db: db}
}

const productColumns = `id, name, slug, category, description, base_price, image_url,
	gallery_urls, required_photos, custom_text_fields, active, created_at, updated_at`

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}) (*models.Product, error) {
	product := &models.Product{}
	var galleryJSON, textFieldsJSON []byte
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Category,
		&product.Description,
		&product.BasePrice,
		&product.ImageURL,
		&galleryJSON,
		&product.RequiredPhotos,
		&textFieldsJSON,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(galleryJSON, &product.GalleryURLs); err != nil {
		return nil, fmt.Errorf("failed to decode gallery urls: %w", err)
	}
	if err := json.Unmarshal(textFieldsJSON, &product.CustomTextFields); err != nil {
		return nil, fmt.Errorf("failed to decode custom text fields: %w", err)
	}
	return product, nil
}

// CreateProduct inserts a new catalog product.
func (q *ProductQueries) CreateProduct(req *models.ProductRequest) (*models.Product, error) {
	galleryJSON, err := json.Marshal(orEmpty(req.GalleryURLs))
	if err != nil {
		return nil, fmt.Errorf("failed to encode gallery urls: %w", err)
	}
	textFieldsJSON, err := json.Marshal(orEmpty(req.CustomTextFields))
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom text fields: %w", err)
	}

	query := `
		INSERT INTO products (name, slug, category, description, base_price, image_url, gallery_urls, required_photos, custom_text_fields, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns
	row := q.db.QueryRow(query,
		req.Name, req.Slug, req.Category, req.Description, req.BasePrice,
		req.ImageURL, galleryJSON, req.RequiredPhotos, textFieldsJSON, req.Active,
	)
	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// GetProductByID returns a product with its variants.
func (q *ProductQueries) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(q.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if err := q.attachVariants(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProductBySlug returns an active product with its variants.
func (q *ProductQueries) GetProductBySlug(slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1 AND active = true`
	product, err := scanProduct(q.db.QueryRow(query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if err := q.attachVariants(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns a page of the catalog. activeOnly hides inactive
// products from the public storefront.
func (q *ProductQueries) ListProducts(page, limit int, activeOnly bool) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	where := ""
	if activeOnly {
		where = "WHERE active = true"
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", where)
	if err := q.db.QueryRow(countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY id LIMIT $1 OFFSET $2`, productColumns, where)
	rows, err := q.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	for i := range products {
		if err := q.attachVariants(&products[i]); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

// UpdateProduct replaces the editable fields of a product.
func (q *ProductQueries) UpdateProduct(id int, req *models.ProductRequest) (*models.Product, error) {
	galleryJSON, err := json.Marshal(orEmpty(req.GalleryURLs))
	if err != nil {
		return nil, fmt.Errorf("failed to encode gallery urls: %w", err)
	}
	textFieldsJSON, err := json.Marshal(orEmpty(req.CustomTextFields))
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom text fields: %w", err)
	}

	query := `
		UPDATE products
		SET name = $1, slug = $2, category = $3, description = $4, base_price = $5,
			image_url = $6, gallery_urls = $7, required_photos = $8, custom_text_fields = $9, active = $10
		WHERE id = $11
		RETURNING ` + productColumns
	row := q.db.QueryRow(query,
		req.Name, req.Slug, req.Category, req.Description, req.BasePrice,
		req.ImageURL, galleryJSON, req.RequiredPhotos, textFieldsJSON, req.Active, id,
	)
	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if err := q.attachVariants(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and, via cascade, its variants.
func (q *ProductQueries) DeleteProduct(id int) error {
	result, err := q.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// ToggleActive flips a product's storefront visibility.
func (q *ProductQueries) ToggleActive(id int) error {
	result, err := q.db.Exec(`UPDATE products SET active = NOT active WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// SlugExists reports whether a slug is taken, optionally excluding one product.
func (q *ProductQueries) SlugExists(slug string, excludeID *int) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		err = q.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id != $2)`, slug, *excludeID).Scan(&exists)
	} else {
		err = q.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (q *ProductQueries) attachVariants(product *models.Product) error {
	variants, err := q.GetVariantsByProductID(product.ID)
	if err != nil {
		return err
	}
	product.Variants = variants
	return nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// GetVariantsByProductID lists a product's variants in insertion order.
func (q *ProductQueries) GetVariantsByProductID(productID int) ([]models.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, price_override, required_photos, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id
	`
	rows, err := q.db.Query(query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceOverride, &v.RequiredPhotos, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}
	return variants, nil
}

// GetVariantByID returns a single variant.
func (q *ProductQueries) GetVariantByID(id int) (*models.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, price_override, required_photos, created_at, updated_at
		FROM product_variants
		WHERE id = $1
	`
	var v models.ProductVariant
	err := q.db.QueryRow(query, id).Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceOverride, &v.RequiredPhotos, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("variant not found")
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	return &v, nil
}

// CreateVariant adds a variant to a product.
func (q *ProductQueries) CreateVariant(req *models.ProductVariantRequest) (*models.ProductVariant, error) {
	query := `
		INSERT INTO product_variants (product_id, name, price_override, required_photos)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, name, price_override, required_photos, created_at, updated_at
	`
	var v models.ProductVariant
	err := q.db.QueryRow(query, req.ProductID, req.Name, req.PriceOverride, req.RequiredPhotos).
		Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceOverride, &v.RequiredPhotos, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return &v, nil
}

// UpdateVariant replaces a variant's editable fields.
func (q *ProductQueries) UpdateVariant(id int, req *models.ProductVariantRequest) (*models.ProductVariant, error) {
	query := `
		UPDATE product_variants
		SET name = $1, price_override = $2, required_photos = $3
		WHERE id = $4
		RETURNING id, product_id, name, price_override, required_photos, created_at, updated_at
	`
	var v models.ProductVariant
	err := q.db.QueryRow(query, req.Name, req.PriceOverride, req.RequiredPhotos, id).
		Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceOverride, &v.RequiredPhotos, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("variant not found")
		}
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}
	return &v, nil
}

// DeleteVariant removes a variant.
func (q *ProductQueries) DeleteVariant(id int) error {
	result, err := q.db.Exec(`DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("variant not found")
	}
	return nil
}
