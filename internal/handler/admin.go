package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yunussid/storefront-system/internal/model"
	"github.com/yunussid/storefront-system/internal/repository"
	"github.com/yunussid/storefront-system/internal/service"
)

type productRequest struct {
	Name              string   `json:"name"`
	NameHindi         string   `json:"nameHindi"`
	Description       string   `json:"description"`
	DescriptionHindi  string   `json:"descriptionHindi"`
	Category          string   `json:"category"`
	Price             float64  `json:"price"`
	DiscountPrice     *float64 `json:"discountPrice"`
	Stock             int      `json:"stock"`
	Images            []string `json:"images"`
	Videos            []string `json:"videos"`
	Featured          bool     `json:"featured"`
	LowStockThreshold int      `json:"lowStockThreshold"`
}

// AdminAddProduct добавляет товар в каталог.
func (h *Handler) AdminAddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.AddProduct(r.Context(), model.Product{
		Name:              req.Name,
		NameHindi:         req.NameHindi,
		Description:       req.Description,
		DescriptionHindi:  req.DescriptionHindi,
		Category:          req.Category,
		Price:             req.Price,
		DiscountPrice:     req.DiscountPrice,
		Stock:             req.Stock,
		Images:            req.Images,
		Videos:            req.Videos,
		Featured:          req.Featured,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("add product error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, p)
}

type productUpdateRequest struct {
	Name              *string  `json:"name"`
	NameHindi         *string  `json:"nameHindi"`
	Description       *string  `json:"description"`
	DescriptionHindi  *string  `json:"descriptionHindi"`
	Category          *string  `json:"category"`
	Price             *float64 `json:"price"`
	DiscountPrice     *float64 `json:"discountPrice"`
	Stock             *int     `json:"stock"`
	Images            []string `json:"images"`
	Videos            []string `json:"videos"`
	Featured          *bool    `json:"featured"`
	LowStockThreshold *int     `json:"lowStockThreshold"`
}

// AdminUpdateProduct применяет частичное обновление товара:
// отсутствующие в запросе поля не меняются.
func (h *Handler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), productIDParam(r), service.ProductUpdate{
		Name:              req.Name,
		NameHindi:         req.NameHindi,
		Description:       req.Description,
		DescriptionHindi:  req.DescriptionHindi,
		Category:          req.Category,
		Price:             req.Price,
		DiscountPrice:     req.DiscountPrice,
		Stock:             req.Stock,
		Images:            req.Images,
		Videos:            req.Videos,
		Featured:          req.Featured,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidProduct):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("update product error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, p)
}

// AdminDeleteProduct убирает товар из каталога. Снимки позиций
// в оформленных заказах при этом сохраняются.
func (h *Handler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), productIDParam(r)); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete product error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminLowStock возвращает товары с остатком не выше порога.
func (h *Handler) AdminLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListLowStockProducts(r.Context())
	if err != nil {
		h.logger.Error("low stock error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(products) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// AdminGetCoupons возвращает все купоны, включая неактивные.
func (h *Handler) AdminGetCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.ListCoupons(r.Context())
	if err != nil {
		h.logger.Error("list coupons error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(coupons) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, coupons)
}

type couponRequest struct {
	Code          string    `json:"code"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	MinOrderValue *float64  `json:"minOrderValue"`
	MaxDiscount   *float64  `json:"maxDiscount"`
	ValidFrom     time.Time `json:"validFrom"`
	ValidTo       time.Time `json:"validTo"`
	Active        bool      `json:"active"`
}

// AdminAddCoupon создаёт новый купон.
func (h *Handler) AdminAddCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	c, err := h.service.AddCoupon(r.Context(), model.Coupon{
		Code:          req.Code,
		DiscountType:  model.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
		Active:        req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCouponExists):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		case errors.Is(err, service.ErrInvalidCoupon):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("add coupon error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, c)
}

type couponUpdateRequest struct {
	Code          *string    `json:"code"`
	DiscountType  *string    `json:"discountType"`
	DiscountValue *float64   `json:"discountValue"`
	MinOrderValue *float64   `json:"minOrderValue"`
	MaxDiscount   *float64   `json:"maxDiscount"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidTo       *time.Time `json:"validTo"`
	Active        *bool      `json:"active"`
}

// AdminUpdateCoupon применяет частичное обновление купона.
func (h *Handler) AdminUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	upd := service.CouponUpdate{
		Code:          req.Code,
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
		Active:        req.Active,
	}
	if req.DiscountType != nil {
		dt := model.DiscountType(*req.DiscountType)
		upd.DiscountType = &dt
	}

	c, err := h.service.UpdateCoupon(r.Context(), couponIDParam(r), upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCouponNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, repository.ErrCouponExists):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		case errors.Is(err, service.ErrInvalidCoupon):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("update coupon error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, c)
}

// AdminDeleteCoupon удаляет купон.
func (h *Handler) AdminDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCoupon(r.Context(), couponIDParam(r)); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete coupon error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminGetOrders возвращает все заказы магазина.
func (h *Handler) AdminGetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("list orders error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// AdminUpdateOrderStatus меняет статус обработки заказа.
// Недопустимый переход отклоняется со статусом 409.
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.OrderStatus(req.Status)
	switch status {
	case model.OrderStatusPlaced, model.OrderStatusConfirmed, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	if err := h.service.UpdateOrderStatus(r.Context(), orderIDParam(r), status); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidStatusTransition):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		default:
			h.logger.Error("update order status error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

// AdminUpdatePaymentStatus меняет состояние оплаты заказа вручную.
func (h *Handler) AdminUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.PaymentStatus(req.Status)
	switch status {
	case model.PaymentStatusPending, model.PaymentStatusPaid, model.PaymentStatusFailed:
	default:
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	if err := h.service.UpdatePaymentStatus(r.Context(), orderIDParam(r), status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("update payment status error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// AdminPendingReviews возвращает отзывы, ожидающие модерации.
func (h *Handler) AdminPendingReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListPendingReviews(r.Context())
	if err != nil {
		h.logger.Error("pending reviews error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(reviews) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, reviews)
}

// AdminApproveReview публикует отзыв.
func (h *Handler) AdminApproveReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ApproveReview(r.Context(), reviewIDParam(r)); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("approve review error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// AdminDeleteReview удаляет отзыв.
func (h *Handler) AdminDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), reviewIDParam(r)); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete review error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
