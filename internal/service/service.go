// Package service реализует бизнес-логику интернет-магазина.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yunussid/storefront-system/internal/model"
	"github.com/yunussid/storefront-system/internal/payment"
	"github.com/yunussid/storefront-system/internal/repository"
)

// ErrCartEmpty возвращается при попытке оформить заказ с пустой корзиной.
var (
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidCredentials возвращается при неверном email или пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidStatusTransition возвращается при недопустимой смене статуса заказа.
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	// ErrInvalidProduct возвращается при некорректных данных товара.
	ErrInvalidProduct = errors.New("invalid product data")
	// ErrInvalidCoupon возвращается при некорректных данных купона.
	ErrInvalidCoupon = errors.New("invalid coupon data")
	// ErrOutOfStock возвращается при попытке положить в корзину закончившийся товар.
	ErrOutOfStock = errors.New("product is out of stock")
)

// CouponRejectedError возвращается из оформления заказа, если указанный купон
// не прошёл проверку. Message предназначено для показа покупателю.
type CouponRejectedError struct {
	Message string
}

func (e *CouponRejectedError) Error() string {
	return e.Message
}

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateUser(ctx context.Context, u *model.User, passwordHash []byte) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, []byte, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, id, name, email, phone string) error
	SetUserLanguage(ctx context.Context, id, language string) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) error
	ListLowStockProducts(ctx context.Context) ([]model.Product, error)

	GetCartItems(ctx context.Context, userID string) ([]model.CartItem, error)
	UpsertCartItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) error

	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	GetCouponByID(ctx context.Context, id string) (*model.Coupon, error)
	CreateCoupon(ctx context.Context, c *model.Coupon) error
	UpdateCoupon(ctx context.Context, c *model.Coupon) error
	DeleteCoupon(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, o *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error
	GetOrdersForPaymentCheck(ctx context.Context, limit int) ([]string, error)

	CreateReview(ctx context.Context, rv *model.Review) error
	ApproveReview(ctx context.Context, id string) error
	DeleteReview(ctx context.Context, id string) error
	GetProductReviews(ctx context.Context, productID string) ([]model.Review, error)
	ListPendingReviews(ctx context.Context) ([]model.Review, error)
}

// Service содержит бизнес-логику интернет-магазина.
type Service struct {
	repo          Repository
	paymentClient *payment.Client
	pricing       PricingConfig
}

// NewService создаёт новый сервис с указанным репозиторием, клиентом платёжной
// системы и политикой доставки.
func NewService(repo Repository, paymentClient *payment.Client, pricing PricingConfig) *Service {
	return &Service{
		repo:          repo,
		paymentClient: paymentClient,
		pricing:       pricing,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// newID генерирует идентификатор на основе текущего времени,
// как их формирует исходная витрина: префикс плюс миллисекунды.
func newID(prefix string) string {
	return prefix + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// RegisterUser регистрирует нового покупателя.
func (s *Service) RegisterUser(ctx context.Context, name, email, phone, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:        newID("u"),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Role:      model.RoleCustomer,
		Language:  "en",
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateUser(ctx, u, hash); err != nil {
		return nil, err
	}

	return u, nil
}

// AuthenticateUser проверяет email и пароль пользователя.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (*model.User, error) {
	u, hash, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// GetUser возвращает пользователя по идентификатору.
func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfile обновляет контактные данные покупателя.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email, phone string) error {
	return s.repo.UpdateUserProfile(ctx, userID, name, email, phone)
}

// SetLanguage сохраняет предпочитаемый язык интерфейса пользователя.
func (s *Service) SetLanguage(ctx context.Context, userID, language string) error {
	return s.repo.SetUserLanguage(ctx, userID, language)
}

// EnsureAdmin создаёт учётную запись администратора, если её ещё нет.
// Вызывается при старте сервиса с данными из конфигурации.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, _, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &model.User{
		ID:        newID("u"),
		Name:      "Admin",
		Email:     email,
		Role:      model.RoleAdmin,
		Language:  "en",
		CreatedAt: time.Now(),
	}

	return s.repo.CreateUser(ctx, admin, hash)
}
