package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yunussid/storefront-system/internal/model"
)

// CouponUpdate описывает частичное обновление купона: nil-поля не меняются.
type CouponUpdate struct {
	Code          *string
	DiscountType  *model.DiscountType
	DiscountValue *float64
	MinOrderValue *float64
	MaxDiscount   *float64
	ValidFrom     *time.Time
	ValidTo       *time.Time
	Active        *bool
}

func validateCouponData(c *model.Coupon) error {
	if c.Code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCoupon)
	}
	if c.DiscountType != model.DiscountTypePercentage && c.DiscountType != model.DiscountTypeFixed {
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidCoupon, c.DiscountType)
	}
	if c.DiscountValue <= 0 {
		return fmt.Errorf("%w: discount value must be positive", ErrInvalidCoupon)
	}
	if c.ValidTo.Before(c.ValidFrom) {
		return fmt.Errorf("%w: validTo precedes validFrom", ErrInvalidCoupon)
	}
	return nil
}

// ListCoupons возвращает все купоны.
func (s *Service) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

// AddCoupon создаёт новый купон, назначая ему идентификатор.
func (s *Service) AddCoupon(ctx context.Context, c model.Coupon) (*model.Coupon, error) {
	c.ID = newID("c")

	if err := validateCouponData(&c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCoupon(ctx, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// UpdateCoupon применяет частичное обновление купона.
func (s *Service) UpdateCoupon(ctx context.Context, id string, upd CouponUpdate) (*model.Coupon, error) {
	c, err := s.repo.GetCouponByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Code != nil {
		c.Code = *upd.Code
	}
	if upd.DiscountType != nil {
		c.DiscountType = *upd.DiscountType
	}
	if upd.DiscountValue != nil {
		c.DiscountValue = *upd.DiscountValue
	}
	if upd.MinOrderValue != nil {
		c.MinOrderValue = upd.MinOrderValue
	}
	if upd.MaxDiscount != nil {
		c.MaxDiscount = upd.MaxDiscount
	}
	if upd.ValidFrom != nil {
		c.ValidFrom = *upd.ValidFrom
	}
	if upd.ValidTo != nil {
		c.ValidTo = *upd.ValidTo
	}
	if upd.Active != nil {
		c.Active = *upd.Active
	}

	if err := validateCouponData(c); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCoupon(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteCoupon удаляет купон.
func (s *Service) DeleteCoupon(ctx context.Context, id string) error {
	return s.repo.DeleteCoupon(ctx, id)
}
