// Package models holds the GORM entities shared by every repository.
// Deletion is always soft: rows carry a Deleted flag and reads filter on
// it; there is no hard-delete or restore path. Slugs are therefore only
// unique among live rows, which the services enforce; a plain DB index
// would otherwise block reusing the name of a deleted row.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	UserID       string `gorm:"size:8;uniqueIndex" json:"user_id"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:30" json:"first_name"`
	LastName     string `gorm:"size:30" json:"last_name"`
	PhoneNumber  string `gorm:"size:15;uniqueIndex" json:"phone_number"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`
	Deleted      bool   `gorm:"default:false;index" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created"`
	UpdatedAt    time.Time  `json:"updated"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Slug        string    `gorm:"size:100;not null;index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:255" json:"image"`
	Status      bool      `gorm:"default:true" json:"status"`
	Deleted     bool      `gorm:"default:false;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SubCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"index" json:"category"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category_detail,omitempty"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Slug        string    `gorm:"size:150;not null;index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:255" json:"image"`
	Status      bool      `gorm:"default:true" json:"status"`
	Deleted     bool      `gorm:"default:false;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductID     string          `gorm:"size:8;uniqueIndex" json:"product_id"`
	Name          string          `gorm:"size:255;not null;index" json:"name"`
	Slug          string          `gorm:"size:255;not null;index" json:"slug"`
	Description   string          `gorm:"type:text" json:"description"`
	RegularPrice  decimal.Decimal `gorm:"type:decimal(10,2)" json:"regular_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	Sizes         StringList      `gorm:"type:text" json:"sizes"`
	Colors        StringList      `gorm:"type:text" json:"colors"`
	CategoryID    *uint           `gorm:"index" json:"category"`
	SubCategoryID *uint           `gorm:"index" json:"sub_category"`
	Gender        string          `gorm:"size:50" json:"gender"`
	ProductCode   string          `gorm:"size:50" json:"product_code"`
	ProductSKU    string          `gorm:"size:50" json:"product_sku"`
	Tags          StringList      `gorm:"type:text" json:"tags"`
	Quantity      int             `gorm:"default:0" json:"quantity"`
	Status        bool            `gorm:"default:true" json:"status"`
	Deleted       bool            `gorm:"default:false;index" json:"-"`
	Images        []ProductImage  `gorm:"foreignKey:ProductID;references:ID" json:"images"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"-"`
	Image     string `gorm:"size:255" json:"image"`
	Deleted   bool   `gorm:"default:false" json:"-"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem rows are unique per (cart, product, size, color); adding the
// same combination again increments Quantity instead of duplicating.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index:idx_cart_line,unique,priority:1" json:"-"`
	ProductID uint      `gorm:"index:idx_cart_line,unique,priority:2" json:"-"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"size:50;index:idx_cart_line,unique,priority:3" json:"size"`
	Color     string    `gorm:"size:50;index:idx_cart_line,unique,priority:4" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCanceled  = "Canceled"
)

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     string          `gorm:"size:18;uniqueIndex" json:"order_id"`
	UserID      uint            `gorm:"index" json:"-"`
	Status      string          `gorm:"size:50;default:Pending" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);default:0.00" json:"total_amount"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;references:ID" json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem snapshots the unit price at order time.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"-"`
	ProductID uint            `json:"-"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"uniqueIndex" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	Status        string          `gorm:"size:50;default:Pending" json:"status"`
	PaidAt        time.Time       `gorm:"autoCreateTime" json:"paid_at"`
}

type Shipping struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index" json:"-"`
	OrderID    uint       `gorm:"uniqueIndex" json:"-"`
	Address    string     `gorm:"type:text" json:"address"`
	City       string     `gorm:"size:100" json:"city"`
	PostalCode string     `gorm:"size:20" json:"postal_code"`
	Country    string     `gorm:"size:100" json:"country"`
	ShippedAt  *time.Time `json:"shipped_at"`
	Status     string     `gorm:"size:50;default:Pending" json:"status"`
}

type Inventory struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ProductID     uint `gorm:"uniqueIndex" json:"-"`
	StockQuantity int  `gorm:"default:0" json:"stock_quantity"`
}

// All lists every entity for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&SubCategory{},
		&Product{},
		&ProductImage{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Shipping{},
		&Inventory{},
	}
}
