package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yunussid/storefront-system/internal/model"
	"github.com/yunussid/storefront-system/internal/repository"
)

const currencySymbol = "₹"

// PricingConfig задаёт политику стоимости доставки.
type PricingConfig struct {
	DeliveryCharge    float64
	FreeDeliveryAbove float64
}

// Subtotal возвращает сумму корзины: действующая цена каждой позиции,
// умноженная на количество.
func Subtotal(items []model.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Product.EffectiveUnitPrice() * float64(item.Quantity)
	}
	return total
}

// ItemCount возвращает суммарное количество единиц товара в корзине.
func ItemCount(items []model.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// ValidateCoupon проверяет применимость купона к заказу с указанной суммой.
// Любая причина отказа возвращается как результат с сообщением, не как ошибка;
// ошибкой завершается только сбой чтения купона из хранилища.
func (s *Service) ValidateCoupon(ctx context.Context, code string, orderSubtotal float64) (*model.CouponResult, error) {
	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return &model.CouponResult{Valid: false, Discount: 0, Message: "Invalid coupon code"}, nil
		}
		return nil, err
	}

	return evaluateCoupon(coupon, orderSubtotal, time.Now()), nil
}

// evaluateCoupon — чистая функция проверки купона. Окно действия — замкнутый
// интервал: купон применим ровно в моменты validFrom и validTo. Фиксированная
// скидка не ограничивается суммой заказа.
func evaluateCoupon(coupon *model.Coupon, orderSubtotal float64, now time.Time) *model.CouponResult {
	if !coupon.Active {
		return &model.CouponResult{Valid: false, Discount: 0, Message: "Coupon is not active"}
	}

	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidTo) {
		return &model.CouponResult{Valid: false, Discount: 0, Message: "Coupon has expired"}
	}

	if coupon.MinOrderValue != nil && orderSubtotal < *coupon.MinOrderValue {
		return &model.CouponResult{
			Valid:    false,
			Discount: 0,
			Message:  fmt.Sprintf("Minimum order value %s%.0f required", currencySymbol, *coupon.MinOrderValue),
		}
	}

	var raw float64
	if coupon.DiscountType == model.DiscountTypePercentage {
		raw = orderSubtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscount != nil && raw > *coupon.MaxDiscount {
			raw = *coupon.MaxDiscount
		}
	} else {
		raw = coupon.DiscountValue
	}

	// Скидка всегда округляется вниз до целых рупий.
	return &model.CouponResult{Valid: true, Discount: int64(math.Floor(raw))}
}

// deliveryCharge возвращает стоимость доставки: ноль при самовывозе
// и при сумме заказа не ниже порога бесплатной доставки.
func deliveryCharge(subtotal float64, method model.DeliveryMethod, pricing PricingConfig) float64 {
	if method == model.DeliveryMethodPickup {
		return 0
	}
	if subtotal >= pricing.FreeDeliveryAbove {
		return 0
	}
	return pricing.DeliveryCharge
}

// orderTotal вычисляет итоговую сумму заказа. Сумма намеренно не ограничивается
// нулём снизу: скидка больше заказа проявится отрицательным итогом.
func orderTotal(subtotal, delivery float64, discount int64) float64 {
	return subtotal + delivery - float64(discount)
}
