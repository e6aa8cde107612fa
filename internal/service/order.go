package service

import (
	"context"
	"net/http"
	"time"

	"github.com/yunussid/storefront-system/internal/model"
	"github.com/yunussid/storefront-system/internal/payment"
)

// OrderDraft содержит данные оформления заказа от покупателя.
// Идентификатор, итог и временные метки назначает сервис.
type OrderDraft struct {
	Address        model.Address
	DeliveryMethod model.DeliveryMethod
	PaymentMethod  model.PaymentMethod
	CouponCode     string
}

// PlaceOrder оформляет заказ из текущей корзины пользователя: проверяет купон,
// считает доставку и итог, фиксирует снимок позиций, списывает остатки и
// очищает корзину. Возвращает идентификатор созданного заказа.
func (s *Service) PlaceOrder(ctx context.Context, userID string, draft OrderDraft) (string, error) {
	items, err := s.repo.GetCartItems(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrCartEmpty
	}

	subtotal := Subtotal(items)

	var (
		discount   int64
		couponCode string
	)
	if draft.CouponCode != "" {
		result, err := s.ValidateCoupon(ctx, draft.CouponCode, subtotal)
		if err != nil {
			return "", err
		}
		if !result.Valid {
			return "", &CouponRejectedError{Message: result.Message}
		}
		discount = result.Discount
		couponCode = draft.CouponCode
	}

	delivery := deliveryCharge(subtotal, draft.DeliveryMethod, s.pricing)
	total := orderTotal(subtotal, delivery, discount)

	snapshot := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, model.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.EffectiveUnitPrice(),
			Quantity:  item.Quantity,
		})
	}

	now := time.Now()
	order := &model.Order{
		ID:             newID("ORD"),
		UserID:         userID,
		Items:          snapshot,
		Total:          total,
		Address:        draft.Address,
		DeliveryMethod: draft.DeliveryMethod,
		PaymentMethod:  draft.PaymentMethod,
		PaymentStatus:  model.PaymentStatusPending,
		OrderStatus:    model.OrderStatusPlaced,
		CouponCode:     couponCode,
		Discount:       discount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return "", err
	}

	return order.ID, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// GetOrdersByUser возвращает заказы пользователя.
func (s *Service) GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// ListOrders возвращает все заказы магазина.
func (s *Service) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.repo.ListOrders(ctx)
}

// canTransition проверяет допустимость смены статуса заказа: статусы идут
// по цепочке placed → confirmed → shipped → delivered, отмена возможна
// из любого незавершённого статуса.
func canTransition(from, to model.OrderStatus) bool {
	switch from {
	case model.OrderStatusPlaced:
		return to == model.OrderStatusConfirmed || to == model.OrderStatusCancelled
	case model.OrderStatusConfirmed:
		return to == model.OrderStatusShipped || to == model.OrderStatusCancelled
	case model.OrderStatusShipped:
		return to == model.OrderStatusDelivered || to == model.OrderStatusCancelled
	default:
		return false
	}
}

// UpdateOrderStatus переводит заказ в новый статус, отклоняя недопустимые переходы.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}

	if !canTransition(order.OrderStatus, status) {
		return ErrInvalidStatusTransition
	}

	return s.repo.UpdateOrderStatus(ctx, id, status)
}

// UpdatePaymentStatus обновляет состояние оплаты заказа.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error {
	return s.repo.UpdatePaymentStatus(ctx, id, status)
}

// StartPaymentUpdates запускает фоновый процесс сверки оплат с платёжной системой.
func (s *Service) StartPaymentUpdates(ctx context.Context) {
	if s.paymentClient == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.processPaymentBatch(ctx)
			}
		}
	}()
}

func (s *Service) processPaymentBatch(ctx context.Context) {
	ids, err := s.repo.GetOrdersForPaymentCheck(ctx, 100)
	if err != nil {
		return
	}

	for _, id := range ids {
		resp, statusCode, retryAfter, err := s.paymentClient.GetOrderPayment(ctx, id)
		if err != nil {
			continue
		}

		if statusCode == http.StatusTooManyRequests {
			if retryAfter > 0 {
				timer := time.NewTimer(retryAfter)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}
			continue
		}

		if resp == nil {
			continue
		}

		switch resp.Status {
		case payment.StatusPaid:
			_ = s.repo.UpdatePaymentStatus(ctx, id, model.PaymentStatusPaid)
		case payment.StatusFailed:
			_ = s.repo.UpdatePaymentStatus(ctx, id, model.PaymentStatusFailed)
		}
	}
}
