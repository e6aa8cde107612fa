package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yunussid/storefront-system/internal/model"
)

const couponColumns = `id, code, discount_type, discount_value, min_order_value,
	max_discount, valid_from, valid_to, active`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var (
		c            model.Coupon
		discountType string
	)
	err := row.Scan(&c.ID, &c.Code, &discountType, &c.DiscountValue,
		&c.MinOrderValue, &c.MaxDiscount, &c.ValidFrom, &c.ValidTo, &c.Active)
	if err != nil {
		return nil, err
	}
	c.DiscountType = model.DiscountType(discountType)
	return &c, nil
}

// ListCoupons возвращает все купоны.
func (r *PostgresRepository) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return coupons, nil
}

// GetCouponByCode возвращает купон по коду без учёта регистра.
func (r *PostgresRepository) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE LOWER(code) = LOWER($1)`,
		code,
	)

	c, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}

	return c, nil
}

// GetCouponByID возвращает купон по идентификатору.
func (r *PostgresRepository) GetCouponByID(ctx context.Context, id string) (*model.Coupon, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = $1`,
		id,
	)

	c, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}

	return c, nil
}

// CreateCoupon сохраняет новый купон.
func (r *PostgresRepository) CreateCoupon(ctx context.Context, c *model.Coupon) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coupons (id, code, discount_type, discount_value, min_order_value,
		 max_discount, valid_from, valid_to, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Code, string(c.DiscountType), c.DiscountValue, c.MinOrderValue,
		c.MaxDiscount, c.ValidFrom, c.ValidTo, c.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %s", ErrCouponExists, c.Code)
		}
		return fmt.Errorf("create coupon: %w", err)
	}
	return nil
}

// UpdateCoupon перезаписывает купон целиком. Частичное слияние выполняет сервис.
func (r *PostgresRepository) UpdateCoupon(ctx context.Context, c *model.Coupon) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET code = $2, discount_type = $3, discount_value = $4,
		 min_order_value = $5, max_discount = $6, valid_from = $7, valid_to = $8, active = $9
		 WHERE id = $1`,
		c.ID, c.Code, string(c.DiscountType), c.DiscountValue, c.MinOrderValue,
		c.MaxDiscount, c.ValidFrom, c.ValidTo, c.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %s", ErrCouponExists, c.Code)
		}
		return fmt.Errorf("update coupon: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrCouponNotFound
	}
	return nil
}

// DeleteCoupon удаляет купон.
func (r *PostgresRepository) DeleteCoupon(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrCouponNotFound
	}
	return nil
}
