// Package model содержит доменные сущности интернет-магазина.
package model

import "time"

// Product представляет товар каталога.
type Product struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	NameHindi         string   `json:"nameHindi,omitempty"`
	Description       string   `json:"description"`
	DescriptionHindi  string   `json:"descriptionHindi,omitempty"`
	Category          string   `json:"category"`
	Price             float64  `json:"price"`
	DiscountPrice     *float64 `json:"discountPrice,omitempty"`
	Stock             int      `json:"stock"`
	Images            []string `json:"images"`
	Videos            []string `json:"videos,omitempty"`
	Featured          bool     `json:"featured"`
	LowStockThreshold int      `json:"lowStockThreshold"`
}

// EffectiveUnitPrice возвращает действующую цену единицы товара:
// цену со скидкой, если она задана, иначе базовую цену.
func (p *Product) EffectiveUnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// CartItem представляет позицию корзины покупателя.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// DiscountType описывает вид скидки купона.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon описывает купон на скидку. Код уникален без учёта регистра,
// окно действия [ValidFrom, ValidTo] — замкнутый интервал.
type Coupon struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
	MinOrderValue *float64     `json:"minOrderValue,omitempty"`
	MaxDiscount   *float64     `json:"maxDiscount,omitempty"`
	ValidFrom     time.Time    `json:"validFrom"`
	ValidTo       time.Time    `json:"validTo"`
	Active        bool         `json:"active"`
}

// CouponResult содержит результат проверки купона. Discount — целое число
// рупий, дробная часть всегда отбрасывается.
type CouponResult struct {
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount"`
	Message  string `json:"message,omitempty"`
}

// DeliveryMethod описывает способ получения заказа.
type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodPickup   DeliveryMethod = "pickup"
)

// PaymentMethod описывает способ оплаты заказа.
type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodUPI      PaymentMethod = "upi"
	PaymentMethodRazorpay PaymentMethod = "razorpay"
)

// PaymentStatus описывает состояние оплаты заказа.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Address содержит адрес доставки заказа.
type Address struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// OrderItem — снимок позиции корзины на момент оформления заказа.
// Название и цена копируются из товара и не меняются при его редактировании.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Order представляет оформленный заказ. После создания items и total
// неизменяемы, меняться могут только статусы и updatedAt.
type Order struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Items          []OrderItem    `json:"items"`
	Total          float64        `json:"total"`
	Address        Address        `json:"address"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus"`
	OrderStatus    OrderStatus    `json:"orderStatus"`
	CouponCode     string         `json:"couponCode,omitempty"`
	Discount       int64          `json:"discount,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Role описывает роль пользователя.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
)

// User представляет зарегистрированного пользователя магазина.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review представляет отзыв о товаре. Публикуется только после одобрения.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}
