// Package service implements the cart engine. Every mutation runs in a
// single transaction holding a row lock on the product, so concurrent
// requests cannot jointly overshoot stock.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

type AddItemInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

type UpdateItemInput struct {
	Quantity *int
	Size     *string
	Color    *string
}

// CartView is the cart snapshot returned to clients, with per-line and
// cart totals computed from the sale price.
type CartView struct {
	ID        uint            `json:"id"`
	Items     []CartLineView  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type CartLineView struct {
	ID       uint            `json:"id"`
	Product  *models.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

var errProductNotFound = apperrors.WithField(apperrors.KindNotFound, "product", "Product not found.")
var errCartItemNotFound = apperrors.WithField(apperrors.KindNotFound, "item", "Cart item not found.")

// forUpdate takes a row lock where the dialect supports it. SQLite
// serializes writers on its own and rejects FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AddItem validates the requested line against the live product and
// merges it into the caller's cart. Stock is never mutated here.
func (s *CartService) AddItem(ctx context.Context, userID uint, input AddItemInput) (*models.CartItem, error) {
	if input.Quantity < 1 {
		return nil, apperrors.WithField(apperrors.KindValidation, "quantity", "Quantity must be at least 1.")
	}

	var item *models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := lockProductByPublicID(tx, input.ProductID)
		if err != nil {
			return err
		}
		if err := checkVariant(product, input.Size, input.Color); err != nil {
			return err
		}

		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			cart.ID, product.ID, input.Size, input.Color).
			First(&existing).Error
		switch {
		case err == nil:
			merged := existing.Quantity + input.Quantity
			if merged > product.Quantity {
				return insufficientStock(product.Quantity - existing.Quantity)
			}
			existing.Quantity = merged
			if err := tx.Model(&existing).Update("quantity", merged).Error; err != nil {
				return err
			}
			item = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if input.Quantity > product.Quantity {
				return insufficientStock(product.Quantity)
			}
			line := models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				Size:      input.Size,
				Color:     input.Color,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			item = &line
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update to a line in the caller's cart;
// unset fields keep their prior values. The final quantity and variant
// are validated against the live product before anything is written.
func (s *CartService) UpdateItem(ctx context.Context, userID uint, itemID uint, input UpdateItemInput) (*models.CartItem, error) {
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, apperrors.WithField(apperrors.KindValidation, "quantity", "Quantity must be at least 1.")
	}

	var item *models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ownCartItem(tx, userID, itemID)
		if err != nil {
			return err
		}

		var product models.Product
		if err := forUpdate(tx).
			Where("id = ? AND deleted = ?", existing.ProductID, false).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProductNotFound
			}
			return err
		}

		quantity := existing.Quantity
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		size := existing.Size
		if input.Size != nil {
			size = *input.Size
		}
		color := existing.Color
		if input.Color != nil {
			color = *input.Color
		}

		if err := checkVariant(&product, size, color); err != nil {
			return err
		}
		if quantity > product.Quantity {
			return insufficientStock(product.Quantity)
		}

		updates := map[string]interface{}{
			"quantity": quantity,
			"size":     size,
			"color":    color,
		}
		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line from the caller's cart. Removing an item
// that is already gone reports NotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID uint, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownCartItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

// ViewCart returns the cart with product details and computed totals.
// A user who never added anything gets an empty cart, not an error.
func (s *CartService) ViewCart(ctx context.Context, userID uint) (*CartView, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product").
		Preload("Items.Product.Images", "deleted = ?", false).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartView{Items: []CartLineView{}, Total: decimal.Zero}, nil
		}
		return nil, err
	}

	view := &CartView{ID: cart.ID, Items: make([]CartLineView, 0, len(cart.Items)), Total: decimal.Zero}
	for _, item := range cart.Items {
		line := CartLineView{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		}
		if item.Product != nil {
			line.Subtotal = item.Product.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		view.Total = view.Total.Add(line.Subtotal)
		view.ItemCount += item.Quantity
		view.Items = append(view.Items, line)
	}
	return view, nil
}

func lockProductByPublicID(tx *gorm.DB, productID string) (*models.Product, error) {
	var product models.Product
	err := forUpdate(tx).
		Where("product_id = ? AND deleted = ?", productID, false).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func getOrCreateCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func ownCartItem(tx *gorm.DB, userID uint, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// checkVariant enforces membership when the product restricts sizes or
// colors. An empty selection is always accepted.
func checkVariant(product *models.Product, size, color string) error {
	if size != "" && len(product.Sizes) > 0 && !product.Sizes.Contains(size) {
		return apperrors.WithField(apperrors.KindInvalidVariant, "size",
			fmt.Sprintf("Size %q is not available for this product.", size))
	}
	if color != "" && len(product.Colors) > 0 && !product.Colors.Contains(color) {
		return apperrors.WithField(apperrors.KindInvalidVariant, "color",
			fmt.Sprintf("Color %q is not available for this product.", color))
	}
	return nil
}

func insufficientStock(remaining int) error {
	if remaining < 0 {
		remaining = 0
	}
	return apperrors.WithField(apperrors.KindInsufficientStock, "quantity",
		fmt.Sprintf("Insufficient stock: only %d more unit(s) available.", remaining))
}
