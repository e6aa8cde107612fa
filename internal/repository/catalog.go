package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yunussid/storefront-system/internal/model"
)

const productColumns = `id, name, name_hindi, description, description_hindi, category,
	price, discount_price, stock, images, videos, featured, low_stock_threshold`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p        model.Product
		price    int64
		discount *int64
	)
	err := row.Scan(&p.ID, &p.Name, &p.NameHindi, &p.Description, &p.DescriptionHindi,
		&p.Category, &price, &discount, &p.Stock, &p.Images, &p.Videos, &p.Featured,
		&p.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	p.Price = paiseToRupees(price)
	if discount != nil {
		v := paiseToRupees(*discount)
		p.DiscountPrice = &v
	}

	return &p, nil
}

// ListProducts возвращает все товары каталога.
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// GetProductByID возвращает товар по идентификатору.
func (r *PostgresRepository) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// CreateProduct сохраняет новый товар каталога.
func (r *PostgresRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	var discount *int64
	if p.DiscountPrice != nil {
		v := rupeesToPaise(*p.DiscountPrice)
		discount = &v
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, name_hindi, description, description_hindi, category,
		 price, discount_price, stock, images, videos, featured, low_stock_threshold)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.NameHindi, p.Description, p.DescriptionHindi, p.Category,
		rupeesToPaise(p.Price), discount, p.Stock, p.Images, p.Videos, p.Featured,
		p.LowStockThreshold,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct перезаписывает товар целиком. Частичное слияние выполняет сервис.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	var discount *int64
	if p.DiscountPrice != nil {
		v := rupeesToPaise(*p.DiscountPrice)
		discount = &v
	}

	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $2, name_hindi = $3, description = $4,
		 description_hindi = $5, category = $6, price = $7, discount_price = $8,
		 stock = $9, images = $10, videos = $11, featured = $12, low_stock_threshold = $13
		 WHERE id = $1`,
		p.ID, p.Name, p.NameHindi, p.Description, p.DescriptionHindi, p.Category,
		rupeesToPaise(p.Price), discount, p.Stock, p.Images, p.Videos, p.Featured,
		p.LowStockThreshold,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct удаляет товар из каталога вместе с позициями корзин.
// Снимки в заказах не затрагиваются.
func (r *PostgresRepository) DeleteProduct(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// DecrementStock уменьшает остаток товара, не опуская его ниже нуля.
func (r *PostgresRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products SET stock = GREATEST(0, stock - $2) WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListLowStockProducts возвращает товары с остатком не выше их порога.
func (r *PostgresRepository) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock <= low_stock_threshold ORDER BY stock`,
	)
	if err != nil {
		return nil, fmt.Errorf("select low stock products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// GetCartItems возвращает содержимое корзины пользователя вместе с данными товаров.
func (r *PostgresRepository) GetCartItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.name_hindi, p.description, p.description_hindi, p.category,
		 p.price, p.discount_price, p.stock, p.images, p.videos, p.featured, p.low_stock_threshold,
		 c.quantity
		 FROM cart_items c
		 JOIN products p ON p.id = c.product_id
		 WHERE c.user_id = $1
		 ORDER BY c.added_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var (
			item     model.CartItem
			price    int64
			discount *int64
		)
		err := rows.Scan(&item.Product.ID, &item.Product.Name, &item.Product.NameHindi,
			&item.Product.Description, &item.Product.DescriptionHindi, &item.Product.Category,
			&price, &discount, &item.Product.Stock, &item.Product.Images, &item.Product.Videos,
			&item.Product.Featured, &item.Product.LowStockThreshold, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}

		item.Product.Price = paiseToRupees(price)
		if discount != nil {
			v := paiseToRupees(*discount)
			item.Product.DiscountPrice = &v
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// UpsertCartItem записывает позицию корзины, заменяя существующую.
func (r *PostgresRepository) UpsertCartItem(ctx context.Context, userID, productID string, quantity int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = $3`,
		userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// RemoveCartItem удаляет позицию из корзины пользователя.
func (r *PostgresRepository) RemoveCartItem(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// ClearCart очищает корзину пользователя.
func (r *PostgresRepository) ClearCart(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
