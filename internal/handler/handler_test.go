package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/yunussid/storefront-system/internal/middleware"
	"github.com/yunussid/storefront-system/internal/model"
	"github.com/yunussid/storefront-system/internal/repository"
	"github.com/yunussid/storefront-system/internal/service"
)

type stubService struct {
	registerResp *model.User
	registerErr  error

	authResp *model.User
	authErr  error

	userResp *model.User
	userErr  error

	productsResp []model.Product
	productsErr  error

	productResp *model.Product
	productErr  error

	cartResp *service.Cart
	cartErr  error

	addToCartErr error

	couponResultResp *model.CouponResult
	couponResultErr  error

	couponsResp []model.Coupon
	couponsErr  error

	placeOrderID  string
	placeOrderErr error

	orderResp *model.Order
	orderErr  error

	ordersResp []model.Order
	ordersErr  error

	updateStatusErr error

	reviewResp  *model.Review
	reviewErr   error
	reviewsResp []model.Review
	reviewsErr  error
}

func (s *stubService) RegisterUser(ctx context.Context, name, email, phone, password string) (*model.User, error) {
	return s.registerResp, s.registerErr
}

func (s *stubService) AuthenticateUser(ctx context.Context, email, password string) (*model.User, error) {
	return s.authResp, s.authErr
}

func (s *stubService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userResp, s.userErr
}

func (s *stubService) UpdateProfile(ctx context.Context, userID, name, email, phone string) error {
	return nil
}

func (s *stubService) SetLanguage(ctx context.Context, userID, language string) error {
	return nil
}

func (s *stubService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productsResp, s.productsErr
}

func (s *stubService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.productResp, s.productErr
}

func (s *stubService) AddProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	return s.productResp, s.productErr
}

func (s *stubService) UpdateProduct(ctx context.Context, id string, upd service.ProductUpdate) (*model.Product, error) {
	return s.productResp, s.productErr
}

func (s *stubService) DeleteProduct(ctx context.Context, id string) error {
	return s.productErr
}

func (s *stubService) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	return s.productsResp, s.productsErr
}

func (s *stubService) GetCart(ctx context.Context, userID string) (*service.Cart, error) {
	return s.cartResp, s.cartErr
}

func (s *stubService) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	return s.addToCartErr
}

func (s *stubService) UpdateCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return s.addToCartErr
}

func (s *stubService) RemoveFromCart(ctx context.Context, userID, productID string) error {
	return nil
}

func (s *stubService) ClearCart(ctx context.Context, userID string) error {
	return nil
}

func (s *stubService) ValidateCoupon(ctx context.Context, code string, subtotal float64) (*model.CouponResult, error) {
	return s.couponResultResp, s.couponResultErr
}

func (s *stubService) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return s.couponsResp, s.couponsErr
}

func (s *stubService) AddCoupon(ctx context.Context, c model.Coupon) (*model.Coupon, error) {
	return nil, s.couponsErr
}

func (s *stubService) UpdateCoupon(ctx context.Context, id string, upd service.CouponUpdate) (*model.Coupon, error) {
	return nil, s.couponsErr
}

func (s *stubService) DeleteCoupon(ctx context.Context, id string) error {
	return s.couponsErr
}

func (s *stubService) PlaceOrder(ctx context.Context, userID string, draft service.OrderDraft) (string, error) {
	return s.placeOrderID, s.placeOrderErr
}

func (s *stubService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.orderResp, s.orderErr
}

func (s *stubService) GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.ordersResp, s.ordersErr
}

func (s *stubService) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.ordersResp, s.ordersErr
}

func (s *stubService) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.updateStatusErr
}

func (s *stubService) UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error {
	return s.updateStatusErr
}

func (s *stubService) AddReview(ctx context.Context, userID, productID string, rating int, comment string) (*model.Review, error) {
	return s.reviewResp, s.reviewErr
}

func (s *stubService) GetProductReviews(ctx context.Context, productID string) ([]model.Review, error) {
	return s.reviewsResp, s.reviewsErr
}

func (s *stubService) ListPendingReviews(ctx context.Context) ([]model.Review, error) {
	return s.reviewsResp, s.reviewsErr
}

func (s *stubService) ApproveReview(ctx context.Context, id string) error {
	return s.reviewErr
}

func (s *stubService) DeleteReview(ctx context.Context, id string) error {
	return s.reviewErr
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	auth := middleware.NewAuthMiddleware("test-secret")

	return NewHandler(svc, logger, auth)
}

func authedRequest(t *testing.T, h *Handler, method, target string, body []byte, role string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	h.authMiddleware.SetAuthCookie(rec, "u1", role)
	req.AddCookie(rec.Result().Cookies()[0])

	return req
}

func TestRegister_Success(t *testing.T) {
	svc := &stubService{
		registerResp: &model.User{ID: "u1", Email: "ravi@example.com", Role: model.RoleCustomer},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(registerRequest{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "pass",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if len(res.Cookies()) == 0 {
		t.Fatalf("auth cookie not set")
	}
}

func TestRegister_Conflict(t *testing.T) {
	svc := &stubService{
		registerErr: repository.ErrUserExists,
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(registerRequest{
		Email:    "ravi@example.com",
		Password: "pass",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusConflict)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	svc := &stubService{
		authErr: service.ErrInvalidCredentials,
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(loginRequest{
		Email:    "ravi@example.com",
		Password: "wrong",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}
}

func TestGetProducts_JSONResponse(t *testing.T) {
	svc := &stubService{
		productsResp: []model.Product{
			{ID: "p1", Name: "Notebook", Price: 250, Stock: 10},
		},
	}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	h.GetProducts(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}
}

func TestGetOrders_NoContent(t *testing.T) {
	svc := &stubService{
		ordersResp: []model.Order{},
	}
	h := newTestHandler(t, svc)

	req := authedRequest(t, h, http.MethodGet, "/api/orders", nil, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.GetOrders))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNoContent)
	}
}

func TestGetOrder_ForbiddenForOtherUser(t *testing.T) {
	svc := &stubService{
		orderResp: &model.Order{ID: "ORD1", UserID: "u2"},
	}
	h := newTestHandler(t, svc)

	req := authedRequest(t, h, http.MethodGet, "/api/orders/ORD1", nil, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.GetOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusForbidden)
	}
}

func TestGetOrder_AdminSeesAnyOrder(t *testing.T) {
	svc := &stubService{
		orderResp: &model.Order{ID: "ORD1", UserID: "u2"},
	}
	h := newTestHandler(t, svc)

	req := authedRequest(t, h, http.MethodGet, "/api/orders/ORD1", nil, "admin")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.GetOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
}

func TestPlaceOrder_EmptyCartConflict(t *testing.T) {
	svc := &stubService{
		placeOrderErr: service.ErrCartEmpty,
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(placeOrderRequest{
		DeliveryMethod: "pickup",
		PaymentMethod:  "cod",
	})

	req := authedRequest(t, h, http.MethodPost, "/api/orders", body, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.PlaceOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusConflict)
	}
}

func TestPlaceOrder_InvalidPincode(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body, _ := json.Marshal(placeOrderRequest{
		Address:        model.Address{Pincode: "012345", Phone: "9278037924"},
		DeliveryMethod: "delivery",
		PaymentMethod:  "cod",
	})

	req := authedRequest(t, h, http.MethodPost, "/api/orders", body, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.PlaceOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	svc := &stubService{
		placeOrderID: "ORD123",
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(placeOrderRequest{
		DeliveryMethod: "pickup",
		PaymentMethod:  "cod",
	})

	req := authedRequest(t, h, http.MethodPost, "/api/orders", body, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.PlaceOrder))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var resp placeOrderResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID != "ORD123" {
		t.Fatalf("orderId = %q, want ORD123", resp.OrderID)
	}
}

func TestValidateCoupon_InvalidStillOK(t *testing.T) {
	svc := &stubService{
		cartResp:         &service.Cart{Subtotal: 100},
		couponResultResp: &model.CouponResult{Valid: false, Message: "Coupon has expired"},
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(validateCouponRequest{Code: "WELCOME10"})

	req := authedRequest(t, h, http.MethodPost, "/api/coupons/validate", body, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.ValidateCoupon))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var result model.CouponResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Valid || result.Message != "Coupon has expired" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAddToCart_OutOfStockConflict(t *testing.T) {
	svc := &stubService{
		addToCartErr: service.ErrOutOfStock,
	}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(cartRequest{ProductID: "p1", Quantity: 1})

	req := authedRequest(t, h, http.MethodPost, "/api/cart", body, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.AddToCart))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusConflict)
	}
}

func TestAdminRoutes_ForbiddenForCustomer(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	router := h.SetupRouter()

	req := authedRequest(t, h, http.MethodGet, "/api/admin/orders", nil, "customer")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusForbidden)
	}
}

func TestAdminUpdateOrderStatus_InvalidTransition(t *testing.T) {
	svc := &stubService{
		updateStatusErr: service.ErrInvalidStatusTransition,
	}
	h := newTestHandler(t, svc)
	router := h.SetupRouter()

	body, _ := json.Marshal(orderStatusRequest{Status: "delivered"})

	req := authedRequest(t, h, http.MethodPatch, "/api/admin/orders/ORD1/status", body, "staff")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusConflict)
	}
}

func TestAddReview_BadRating(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body, _ := json.Marshal(reviewRequest{Rating: 6, Comment: "great"})

	req := authedRequest(t, h, http.MethodPost, "/api/products/p1/reviews", body, "customer")
	rec := httptest.NewRecorder()

	handlerWithAuth := h.authMiddleware.Middleware(http.HandlerFunc(h.AddReview))
	handlerWithAuth.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnprocessableEntity)
	}
}
