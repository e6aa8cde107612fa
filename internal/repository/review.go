package repository

import (
	"context"
	"fmt"

	"github.com/yunussid/storefront-system/internal/model"
)

// CreateReview сохраняет новый отзыв. Отзыв создаётся неодобренным.
func (r *PostgresRepository) CreateReview(ctx context.Context, rv *model.Review) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (id, product_id, user_id, user_name, rating, comment, approved, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rv.ID, rv.ProductID, rv.UserID, rv.UserName, rv.Rating, rv.Comment, rv.Approved, rv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ApproveReview помечает отзыв одобренным.
func (r *PostgresRepository) ApproveReview(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE reviews SET approved = true WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("approve review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// DeleteReview удаляет отзыв.
func (r *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *PostgresRepository) queryReviews(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName,
			&rv.Rating, &rv.Comment, &rv.Approved, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

// GetProductReviews возвращает одобренные отзывы о товаре, новые первыми.
func (r *PostgresRepository) GetProductReviews(ctx context.Context, productID string) ([]model.Review, error) {
	return r.queryReviews(ctx,
		`SELECT id, product_id, user_id, user_name, rating, comment, approved, created_at
		 FROM reviews
		 WHERE product_id = $1 AND approved = true
		 ORDER BY created_at DESC`,
		productID,
	)
}

// ListPendingReviews возвращает отзывы, ожидающие модерации.
func (r *PostgresRepository) ListPendingReviews(ctx context.Context) ([]model.Review, error) {
	return r.queryReviews(ctx,
		`SELECT id, product_id, user_id, user_name, rating, comment, approved, created_at
		 FROM reviews
		 WHERE approved = false
		 ORDER BY created_at`,
	)
}
