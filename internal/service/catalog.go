package service

import (
	"context"
	"fmt"

	"github.com/yunussid/storefront-system/internal/model"
)

// ProductUpdate описывает частичное обновление товара: nil-поля не меняются.
type ProductUpdate struct {
	Name              *string
	NameHindi         *string
	Description       *string
	DescriptionHindi  *string
	Category          *string
	Price             *float64
	DiscountPrice     *float64
	Stock             *int
	Images            []string
	Videos            []string
	Featured          *bool
	LowStockThreshold *int
}

func validateProduct(p *model.Product) error {
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if p.DiscountPrice != nil && *p.DiscountPrice >= p.Price {
		return fmt.Errorf("%w: discount price must be below price", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

// ListProducts возвращает каталог товаров.
func (s *Service) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx)
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// AddProduct добавляет товар в каталог, назначая ему новый идентификатор.
func (s *Service) AddProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.ID = newID("p")
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 10
	}

	if err := validateProduct(&p); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateProduct применяет частичное обновление товара.
func (s *Service) UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (*model.Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.NameHindi != nil {
		p.NameHindi = *upd.NameHindi
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.DescriptionHindi != nil {
		p.DescriptionHindi = *upd.DescriptionHindi
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.DiscountPrice != nil {
		p.DiscountPrice = upd.DiscountPrice
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Images != nil {
		p.Images = upd.Images
	}
	if upd.Videos != nil {
		p.Videos = upd.Videos
	}
	if upd.Featured != nil {
		p.Featured = *upd.Featured
	}
	if upd.LowStockThreshold != nil {
		p.LowStockThreshold = *upd.LowStockThreshold
	}

	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// DeleteProduct убирает товар из каталога. Снимки в существующих заказах сохраняются.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

// UpdateStock уменьшает остаток товара на указанное количество, не ниже нуля.
func (s *Service) UpdateStock(ctx context.Context, productID string, quantity int) error {
	return s.repo.DecrementStock(ctx, productID, quantity)
}

// ListLowStockProducts возвращает товары, остаток которых не выше их порога.
func (s *Service) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListLowStockProducts(ctx)
}

// Cart описывает содержимое корзины с посчитанными итогами.
type Cart struct {
	Items     []model.CartItem `json:"items"`
	Subtotal  float64          `json:"subtotal"`
	ItemCount int              `json:"itemCount"`
}

// GetCart возвращает корзину пользователя с суммой и количеством позиций.
func (s *Service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	items, err := s.repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Cart{
		Items:     items,
		Subtotal:  Subtotal(items),
		ItemCount: ItemCount(items),
	}, nil
}

// AddToCart добавляет товар в корзину, объединяя с существующей позицией.
// Количество ограничивается текущим остатком товара.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock < 1 {
		return ErrOutOfStock
	}

	items, err := s.repo.GetCartItems(ctx, userID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.Product.ID == productID {
			quantity += item.Quantity
			break
		}
	}

	if quantity > p.Stock {
		quantity = p.Stock
	}

	return s.repo.UpsertCartItem(ctx, userID, productID, quantity)
}

// UpdateCartQuantity устанавливает количество позиции корзины
// в пределах от единицы до остатка товара.
func (s *Service) UpdateCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock < 1 {
		return ErrOutOfStock
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > p.Stock {
		quantity = p.Stock
	}

	return s.repo.UpsertCartItem(ctx, userID, productID, quantity)
}

// RemoveFromCart убирает позицию из корзины пользователя.
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID string) error {
	return s.repo.RemoveCartItem(ctx, userID, productID)
}

// ClearCart очищает корзину пользователя.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.repo.ClearCart(ctx, userID)
}
