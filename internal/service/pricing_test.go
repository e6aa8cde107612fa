package service

import (
	"testing"
	"time"

	"github.com/yunussid/storefront-system/internal/model"
)

func ptrFloat(v float64) *float64 {
	return &v
}

func testCoupon() *model.Coupon {
	return &model.Coupon{
		ID:            "c1",
		Code:          "WELCOME10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
		MinOrderValue: ptrFloat(200),
		MaxDiscount:   ptrFloat(100),
		ValidFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Active:        true,
	}
}

func TestEvaluateCoupon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		coupon       func() *model.Coupon
		subtotal     float64
		now          time.Time
		wantValid    bool
		wantDiscount int64
		wantMessage  string
	}{
		{
			name: "inactive coupon",
			coupon: func() *model.Coupon {
				c := testCoupon()
				c.Active = false
				return c
			},
			subtotal:    2000,
			now:         now,
			wantValid:   false,
			wantMessage: "Coupon is not active",
		},
		{
			name: "before window",
			coupon: func() *model.Coupon {
				return testCoupon()
			},
			subtotal:    2000,
			now:         time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			wantValid:   false,
			wantMessage: "Coupon has expired",
		},
		{
			name: "after window",
			coupon: func() *model.Coupon {
				return testCoupon()
			},
			subtotal:    2000,
			now:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			wantValid:   false,
			wantMessage: "Coupon has expired",
		},
		{
			name: "valid exactly at validFrom",
			coupon: func() *model.Coupon {
				return testCoupon()
			},
			subtotal:     2000,
			now:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantValid:    true,
			wantDiscount: 100,
		},
		{
			name: "valid exactly at validTo",
			coupon: func() *model.Coupon {
				return testCoupon()
			},
			subtotal:     2000,
			now:          time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			wantValid:    true,
			wantDiscount: 100,
		},
		{
			name: "below minimum order value",
			coupon: func() *model.Coupon {
				return testCoupon()
			},
			subtotal:    150,
			now:         now,
			wantValid:   false,
			wantMessage: "Minimum order value ₹200 required",
		},
		{
			name: "percentage clamped to max discount",
			coupon: func() *model.Coupon {
				return testCoupon()
			},
			subtotal:     2000,
			now:          now,
			wantValid:    true,
			wantDiscount: 100,
		},
		{
			name: "percentage discount floored to whole rupees",
			coupon: func() *model.Coupon {
				c := testCoupon()
				c.MaxDiscount = nil
				return c
			},
			subtotal:     255,
			now:          now,
			wantValid:    true,
			wantDiscount: 25,
		},
		{
			name: "fixed discount at minimum subtotal",
			coupon: func() *model.Coupon {
				return &model.Coupon{
					Code:          "FLAT50",
					DiscountType:  model.DiscountTypeFixed,
					DiscountValue: 50,
					MinOrderValue: ptrFloat(500),
					ValidFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					ValidTo:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
					Active:        true,
				}
			},
			subtotal:     500,
			now:          now,
			wantValid:    true,
			wantDiscount: 50,
		},
		{
			name: "fixed discount just below minimum",
			coupon: func() *model.Coupon {
				return &model.Coupon{
					Code:          "FLAT50",
					DiscountType:  model.DiscountTypeFixed,
					DiscountValue: 50,
					MinOrderValue: ptrFloat(500),
					ValidFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					ValidTo:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
					Active:        true,
				}
			},
			subtotal:    499,
			now:         now,
			wantValid:   false,
			wantMessage: "Minimum order value ₹500 required",
		},
		{
			name: "fixed discount may exceed subtotal",
			coupon: func() *model.Coupon {
				return &model.Coupon{
					Code:          "MEGA",
					DiscountType:  model.DiscountTypeFixed,
					DiscountValue: 300,
					ValidFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					ValidTo:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
					Active:        true,
				}
			},
			subtotal:     100,
			now:          now,
			wantValid:    true,
			wantDiscount: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluateCoupon(tt.coupon(), tt.subtotal, tt.now)

			if got.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.Discount != tt.wantDiscount {
				t.Fatalf("Discount = %d, want %d", got.Discount, tt.wantDiscount)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Fatalf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if !tt.wantValid && got.Discount != 0 {
				t.Fatalf("invalid result must carry zero discount, got %d", got.Discount)
			}
		})
	}
}

func TestEvaluateCoupon_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	coupon := testCoupon()

	first := evaluateCoupon(coupon, 2000, now)
	second := evaluateCoupon(coupon, 2000, now)

	if *first != *second {
		t.Fatalf("evaluateCoupon is not idempotent: %+v vs %+v", first, second)
	}
}

func TestDeliveryCharge(t *testing.T) {
	pricing := PricingConfig{DeliveryCharge: 50, FreeDeliveryAbove: 500}

	tests := []struct {
		name     string
		subtotal float64
		method   model.DeliveryMethod
		want     float64
	}{
		{
			name:     "pickup is always free",
			subtotal: 100,
			method:   model.DeliveryMethodPickup,
			want:     0,
		},
		{
			name:     "delivery below threshold",
			subtotal: 450,
			method:   model.DeliveryMethodDelivery,
			want:     50,
		},
		{
			name:     "delivery exactly at threshold",
			subtotal: 500,
			method:   model.DeliveryMethodDelivery,
			want:     0,
		},
		{
			name:     "delivery above threshold",
			subtotal: 1000,
			method:   model.DeliveryMethodDelivery,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deliveryCharge(tt.subtotal, tt.method, pricing)
			if got != tt.want {
				t.Fatalf("deliveryCharge(%v, %s) = %v, want %v", tt.subtotal, tt.method, got, tt.want)
			}
		})
	}
}

func TestOrderTotal(t *testing.T) {
	if got := orderTotal(450, 50, 0); got != 500 {
		t.Fatalf("orderTotal(450, 50, 0) = %v, want 500", got)
	}
	if got := orderTotal(450, 50, 50); got != 450 {
		t.Fatalf("orderTotal(450, 50, 50) = %v, want 450", got)
	}
	// Итог не ограничивается нулём снизу.
	if got := orderTotal(100, 50, 300); got != -150 {
		t.Fatalf("orderTotal(100, 50, 300) = %v, want -150", got)
	}
}

func TestSubtotal_UsesEffectivePrice(t *testing.T) {
	items := []model.CartItem{
		{
			Product:  model.Product{ID: "p1", Price: 250, DiscountPrice: ptrFloat(199)},
			Quantity: 2,
		},
		{
			Product:  model.Product{ID: "p2", Price: 150},
			Quantity: 1,
		},
	}

	if got := Subtotal(items); got != 548 {
		t.Fatalf("Subtotal = %v, want 548", got)
	}
	if got := ItemCount(items); got != 3 {
		t.Fatalf("ItemCount = %d, want 3", got)
	}
}
