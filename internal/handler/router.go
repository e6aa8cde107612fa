package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/yunussid/storefront-system/internal/middleware"
	"github.com/yunussid/storefront-system/internal/model"
)

func productIDParam(r *http.Request) string {
	return chi.URLParam(r, "productID")
}

func orderIDParam(r *http.Request) string {
	return chi.URLParam(r, "orderID")
}

func couponIDParam(r *http.Request) string {
	return chi.URLParam(r, "couponID")
}

func reviewIDParam(r *http.Request) string {
	return chi.URLParam(r, "reviewID")
}

// SetupRouter настраивает HTTP-маршруты и middleware интернет-магазина.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Get("/products", h.GetProducts)
		r.Get("/products/{productID}", h.GetProduct)
		r.Get("/products/{productID}/reviews", h.GetProductReviews)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/profile/language", h.SetLanguage)

			r.Get("/cart", h.GetCart)
			r.Post("/cart", h.AddToCart)
			r.Put("/cart/{productID}", h.UpdateCartItem)
			r.Delete("/cart/{productID}", h.RemoveFromCart)
			r.Delete("/cart", h.ClearCart)

			r.Post("/coupons/validate", h.ValidateCoupon)

			r.Post("/orders", h.PlaceOrder)
			r.Get("/orders", h.GetOrders)
			r.Get("/orders/{orderID}", h.GetOrder)

			r.Post("/products/{productID}/reviews", h.AddReview)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			// Статус заказа доступен и сотрудникам, остальное — только администратору.
			r.With(h.authMiddleware.RequireRole(string(model.RoleAdmin), string(model.RoleStaff))).
				Patch("/orders/{orderID}/status", h.AdminUpdateOrderStatus)

			r.Group(func(r chi.Router) {
				r.Use(h.authMiddleware.RequireRole(string(model.RoleAdmin)))

				r.Post("/products", h.AdminAddProduct)
				r.Patch("/products/{productID}", h.AdminUpdateProduct)
				r.Delete("/products/{productID}", h.AdminDeleteProduct)
				r.Get("/products/low-stock", h.AdminLowStock)

				r.Get("/coupons", h.AdminGetCoupons)
				r.Post("/coupons", h.AdminAddCoupon)
				r.Patch("/coupons/{couponID}", h.AdminUpdateCoupon)
				r.Delete("/coupons/{couponID}", h.AdminDeleteCoupon)

				r.Get("/orders", h.AdminGetOrders)
				r.Patch("/orders/{orderID}/payment", h.AdminUpdatePaymentStatus)

				r.Get("/reviews/pending", h.AdminPendingReviews)
				r.Patch("/reviews/{reviewID}/approve", h.AdminApproveReview)
				r.Delete("/reviews/{reviewID}", h.AdminDeleteReview)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
