// Package service turns a cart into an order. Checkout runs as one
// transaction over carts, products, orders, payments and shipping.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
	"github.com/dhruvil1809/ecommerce-backend/pkg/mail"
)

type OrderService struct {
	db     *gorm.DB
	mailer mail.Mailer
}

// forUpdate takes a row lock where the dialect supports it. SQLite
// serializes writers on its own and rejects FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func NewOrderService(db *gorm.DB, mailer mail.Mailer) *OrderService {
	return &OrderService{db: db, mailer: mailer}
}

type CheckoutInput struct {
	PaymentMethod string
	Address       string
	City          string
	PostalCode    string
	Country       string
}

// Checkout converts the caller's cart into a pending order. Product rows
// are locked for the duration so stock cannot be double-spent; the cart
// is cleared only when everything else succeeded.
func (s *OrderService) Checkout(ctx context.Context, user *models.User, input CheckoutInput) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Preload("Items").Where("user_id = ?", user.ID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithField(apperrors.KindValidation, "cart", "Cart is empty.")
			}
			return err
		}
		if len(cart.Items) == 0 {
			return apperrors.WithField(apperrors.KindValidation, "cart", "Cart is empty.")
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			var product models.Product
			err := forUpdate(tx).
				Where("id = ? AND deleted = ?", item.ProductID, false).
				First(&product).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.WithField(apperrors.KindNotFound, "product", "A product in the cart no longer exists.")
				}
				return err
			}
			if item.Quantity > product.Quantity {
				return apperrors.WithField(apperrors.KindInsufficientStock, "quantity",
					fmt.Sprintf("Insufficient stock for %s: only %d unit(s) available.", product.Name, product.Quantity))
			}

			if err := tx.Model(&product).Update("quantity", product.Quantity-item.Quantity).Error; err != nil {
				return err
			}

			lineTotal := product.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.SalePrice,
			})
		}

		orderID, err := s.uniqueOrderID(tx)
		if err != nil {
			return err
		}

		created := models.Order{
			OrderID:     orderID,
			UserID:      user.ID,
			Status:      models.OrderStatusPending,
			TotalAmount: total,
			Items:       orderItems,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		payment := models.Payment{
			OrderID:       created.ID,
			Amount:        total,
			PaymentMethod: input.PaymentMethod,
			Status:        models.PaymentStatusPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		shipping := models.Shipping{
			UserID:     user.ID,
			OrderID:    created.ID,
			Address:    input.Address,
			City:       input.City,
			PostalCode: input.PostalCode,
			Country:    input.Country,
			Status:     models.OrderStatusPending,
		}
		if err := tx.Create(&shipping).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		order = &created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, user, order)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID uint, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("order_id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithField(apperrors.KindNotFound, "order", "Order not found.")
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) uniqueOrderID(tx *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		candidate := models.NewOrderID(time.Now())
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a unique order id")
}

// sendConfirmation is best-effort; a failed mail never fails the order.
func (s *OrderService) sendConfirmation(ctx context.Context, user *models.User, order *models.Order) {
	if s.mailer == nil {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour order %s has been placed.\nTotal: %s\n\nThank you for shopping with us.",
		user.FirstName, order.OrderID, order.TotalAmount.StringFixed(2),
	)
	if err := s.mailer.SendPlainTextEmail(ctx, user.Email, "Order confirmation "+order.OrderID, body); err != nil {
		log.Printf("order confirmation email failed for %s: %v", order.OrderID, err)
	}
}
