package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yunussid/storefront-system/internal/model"
)

// CreateOrder сохраняет заказ и его позиции, уменьшает остатки товаров
// (не ниже нуля) и очищает корзину пользователя в одной транзакции.
func (r *PostgresRepository) CreateOrder(ctx context.Context, o *model.Order) error {
	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		address, err := json.Marshal(o.Address)
		if err != nil {
			return fmt.Errorf("marshal address: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO orders (id, user_id, total, discount, coupon_code, address,
			 delivery_method, payment_method, payment_status, order_status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			o.ID, o.UserID, rupeesToPaise(o.Total), o.Discount*100, o.CouponCode, address,
			string(o.DeliveryMethod), string(o.PaymentMethod), string(o.PaymentStatus),
			string(o.OrderStatus), o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range o.Items {
			_, err = tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
				 VALUES ($1, $2, $3, $4, $5)`,
				o.ID, item.ProductID, item.Name, rupeesToPaise(item.UnitPrice), item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			_, err = tx.Exec(ctx,
				`UPDATE products SET stock = GREATEST(0, stock - $2) WHERE id = $1`,
				item.ProductID, item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}

		return nil
	})
}

const orderColumns = `id, user_id, total, discount, coupon_code, address,
	delivery_method, payment_method, payment_status, order_status, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o        model.Order
		total    int64
		discount int64
		address  []byte
		delivery string
		payMeth  string
		payStat  string
		status   string
	)
	err := row.Scan(&o.ID, &o.UserID, &total, &discount, &o.CouponCode, &address,
		&delivery, &payMeth, &payStat, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(address, &o.Address); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}

	o.Total = paiseToRupees(total)
	o.Discount = discount / 100
	o.DeliveryMethod = model.DeliveryMethod(delivery)
	o.PaymentMethod = model.PaymentMethod(payMeth)
	o.PaymentStatus = model.PaymentStatus(payStat)
	o.OrderStatus = model.OrderStatus(status)

	return &o, nil
}

func (r *PostgresRepository) loadOrderItems(ctx context.Context, orders []model.Order) error {
	for i := range orders {
		rows, err := r.pool.Query(ctx,
			`SELECT product_id, name, unit_price, quantity
			 FROM order_items WHERE order_id = $1`,
			orders[i].ID,
		)
		if err != nil {
			return fmt.Errorf("select order items: %w", err)
		}

		var items []model.OrderItem
		for rows.Next() {
			var (
				item  model.OrderItem
				price int64
			)
			if err := rows.Scan(&item.ProductID, &item.Name, &price, &item.Quantity); err != nil {
				rows.Close()
				return fmt.Errorf("scan order item: %w", err)
			}
			item.UnitPrice = paiseToRupees(price)
			items = append(items, item)
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}

		orders[i].Items = items
	}

	return nil
}

// GetOrderByID возвращает заказ вместе с позициями.
func (r *PostgresRepository) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`,
		id,
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	orders := []model.Order{*o}
	if err := r.loadOrderItems(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.loadOrderItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrdersByUser возвращает заказы пользователя, новые первыми.
func (r *PostgresRepository) GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
}

// ListOrders возвращает все заказы, новые первыми.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`,
	)
}

// UpdateOrderStatus обновляет статус обработки заказа.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE orders SET order_status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdatePaymentStatus обновляет состояние оплаты заказа.
func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE orders SET payment_status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// GetOrdersForPaymentCheck возвращает идентификаторы заказов с онлайн-оплатой,
// ожидающих подтверждения от платёжной системы.
func (r *PostgresRepository) GetOrdersForPaymentCheck(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM orders
		 WHERE payment_status = $1 AND payment_method IN ($2, $3)
		 ORDER BY created_at
		 LIMIT $4`,
		string(model.PaymentStatusPending),
		string(model.PaymentMethodUPI),
		string(model.PaymentMethodRazorpay),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders for payment check: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return ids, nil
}
