package service

import (
	"context"
	"time"

	"github.com/yunussid/storefront-system/internal/model"
)

// AddReview сохраняет отзыв покупателя о товаре. Отзыв попадает на модерацию
// и публикуется только после одобрения администратором.
func (s *Service) AddReview(ctx context.Context, userID, productID string, rating int, comment string) (*model.Review, error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rv := &model.Review{
		ID:        newID("r"),
		ProductID: productID,
		UserID:    userID,
		UserName:  u.Name,
		Rating:    rating,
		Comment:   comment,
		Approved:  false,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}

	return rv, nil
}

// GetProductReviews возвращает одобренные отзывы о товаре.
func (s *Service) GetProductReviews(ctx context.Context, productID string) ([]model.Review, error) {
	return s.repo.GetProductReviews(ctx, productID)
}

// ListPendingReviews возвращает отзывы, ожидающие модерации.
func (s *Service) ListPendingReviews(ctx context.Context) ([]model.Review, error) {
	return s.repo.ListPendingReviews(ctx)
}

// ApproveReview одобряет отзыв для публикации.
func (s *Service) ApproveReview(ctx context.Context, id string) error {
	return s.repo.ApproveReview(ctx, id)
}

// DeleteReview удаляет отзыв.
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	return s.repo.DeleteReview(ctx, id)
}
