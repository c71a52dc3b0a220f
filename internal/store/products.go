package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
)

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing Products interface
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{
		MYSQLStore: ms,
	}
}

func productParams(prd *entity.ProductInsert) map[string]any {
	return map[string]any{
		"name":        prd.Name,
		"description": prd.Description,
		"price":       prd.PriceDecimal(),
		"salePrice":   prd.SalePrice,
		"stock":       prd.Stock,
		"categoryId":  prd.CategoryId,
		"gender":      prd.Gender.String(),
		"archived":    prd.Archived,
		"imageUrl":    prd.ImageURL,
		"blurhash":    prd.Blurhash,
	}
}

func (ms *MYSQLStore) AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error) {
	if !entity.IsValidGender(prd.Gender) {
		return 0, fmt.Errorf("invalid gender: %s", prd.Gender)
	}
	id, err := ExecNamedLastId(ctx, ms.DB(), `
	INSERT INTO product (name, description, price, sale_price, stock, category_id, gender, archived, image_url, blurhash) VALUES
		(:name, :description, :price, :salePrice, :stock, :categoryId, :gender, :archived, :imageUrl, :blurhash)`,
		productParams(prd))
	if err != nil {
		return 0, fmt.Errorf("failed to add product: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) UpdateProduct(ctx context.Context, prd *entity.ProductInsert, id int) error {
	if !entity.IsValidGender(prd.Gender) {
		return fmt.Errorf("invalid gender: %s", prd.Gender)
	}
	params := productParams(prd)
	params["id"] = id
	rows, err := ExecNamedRows(ctx, ms.DB(), `
	UPDATE product
	SET name = :name,
		description = :description,
		price = :price,
		sale_price = :salePrice,
		stock = :stock,
		category_id = :categoryId,
		gender = :gender,
		archived = :archived,
		image_url = :imageUrl,
		blurhash = :blurhash
	WHERE id = :id`, params)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if rows == 0 {
		return gerr.ErrProductNotFound
	}
	return nil
}

func (ms *MYSQLStore) GetProductsPaged(
	ctx context.Context,
	limit, offset int,
	sortFactor entity.SortFactor,
	orderFactor entity.OrderFactor,
	filter *entity.ProductFilter,
) ([]entity.Product, int, error) {
	where := []string{"1 = 1"}
	params := map[string]any{
		"limit":  limit,
		"offset": offset,
	}

	if filter != nil {
		if !filter.ShowArchived {
			where = append(where, "p.archived = FALSE")
		}
		if filter.CategoryId > 0 {
			where = append(where, "p.category_id = :categoryId")
			params["categoryId"] = filter.CategoryId
		}
		if filter.Gender != "" {
			if !entity.IsValidGender(filter.Gender) {
				return nil, 0, fmt.Errorf("invalid gender: %s", filter.Gender)
			}
			where = append(where, "p.gender = :gender")
			params["gender"] = filter.Gender.String()
		}
	} else {
		where = append(where, "p.archived = FALSE")
	}

	whereClause := strings.Join(where, " AND ")

	query := fmt.Sprintf(`
	SELECT p.*, c.name AS category_name
	FROM product p
	LEFT JOIN category c ON c.id = p.category_id
	WHERE %s
	ORDER BY p.%s %s
	LIMIT :limit OFFSET :offset`, whereClause, sortFactor.String(), orderFactor.String())

	products, err := QueryListNamed[entity.Product](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get product list: %w", err)
	}

	count, err := QueryCountNamed(ctx, ms.DB(), fmt.Sprintf(`
	SELECT COUNT(*) FROM product p WHERE %s`, whereClause), params)
	if err != nil {
		return nil, 0, fmt.Errorf("can't count products: %w", err)
	}

	return products, count, nil
}

func (ms *MYSQLStore) GetProductById(ctx context.Context, id int) (*entity.Product, error) {
	product, err := QueryNamedOne[entity.Product](ctx, ms.DB(), `
	SELECT p.*, c.name AS category_name
	FROM product p
	LEFT JOIN category c ON c.id = p.category_id
	WHERE p.id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrProductNotFound
		}
		return nil, fmt.Errorf("can't get product by id: %w", err)
	}
	return &product, nil
}

func (ms *MYSQLStore) ArchiveProductById(ctx context.Context, id int, archived bool) error {
	rows, err := ExecNamedRows(ctx, ms.DB(), `
	UPDATE product SET archived = :archived WHERE id = :id`, map[string]any{
		"id":       id,
		"archived": archived,
	})
	if err != nil {
		return fmt.Errorf("failed to archive product: %w", err)
	}
	if rows == 0 {
		return gerr.ErrProductNotFound
	}
	return nil
}

func (ms *MYSQLStore) DeleteProductById(ctx context.Context, id int) error {
	rows, err := ExecNamedRows(ctx, ms.DB(), `
	DELETE FROM product WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if rows == 0 {
		return gerr.ErrProductNotFound
	}
	return nil
}

func (ms *MYSQLStore) GetLowStockProducts(ctx context.Context, threshold, limit int) ([]entity.Product, error) {
	products, err := QueryListNamed[entity.Product](ctx, ms.DB(), `
	SELECT p.*, c.name AS category_name
	FROM product p
	LEFT JOIN category c ON c.id = p.category_id
	WHERE p.stock < :threshold AND p.archived = FALSE
	ORDER BY p.stock ASC
	LIMIT :limit`, map[string]any{
		"threshold": threshold,
		"limit":     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get low stock products: %w", err)
	}
	return products, nil
}

// ReduceStock decrements stock for every item. The guard in the WHERE clause
// keeps stock from going negative under concurrent checkouts; an unmatched
// row means the product is missing or short.
func (ms *MYSQLStore) ReduceStock(ctx context.Context, items []entity.OrderItemInsert) error {
	for _, item := range items {
		rows, err := ExecNamedRows(ctx, ms.DB(), `
		UPDATE product
		SET stock = stock - :quantity
		WHERE id = :productId AND stock >= :quantity`, map[string]any{
			"productId": item.ProductId,
			"quantity":  item.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to reduce stock for product %d: %w", item.ProductId, err)
		}
		if rows == 0 {
			return fmt.Errorf("product %d: %w", item.ProductId, gerr.ErrInsufficientStock)
		}
	}
	return nil
}

func (ms *MYSQLStore) RestoreStock(ctx context.Context, items []entity.OrderItemInsert) error {
	for _, item := range items {
		err := ExecNamed(ctx, ms.DB(), `
		UPDATE product
		SET stock = stock + :quantity
		WHERE id = :productId`, map[string]any{
			"productId": item.ProductId,
			"quantity":  item.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", item.ProductId, err)
		}
	}
	return nil
}

func (ms *MYSQLStore) AddCategory(ctx context.Context, name string) (int, error) {
	id, err := ExecNamedLastId(ctx, ms.DB(), `
	INSERT INTO category (name) VALUES (:name)`, map[string]any{
		"name": name,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add category: %w", err)
	}
	ms.cache.AddCategory(entity.Category{
		Id:   id,
		Name: name,
	})
	return id, nil
}

func (ms *MYSQLStore) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := QueryListNamed[entity.Category](ctx, ms.DB(), `
	SELECT * FROM category ORDER BY name ASC`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get category list: %w", err)
	}
	return categories, nil
}

// DeleteCategoryById removes the category. Products referencing it fall back
// to uncategorized via the FK's ON DELETE SET NULL.
func (ms *MYSQLStore) DeleteCategoryById(ctx context.Context, id int) error {
	err := ExecNamed(ctx, ms.DB(), `
	DELETE FROM category WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	ms.cache.DeleteCategory(id)
	return nil
}
