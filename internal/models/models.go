package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type Restaurant struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	ShippingFee int64  `gorm:"default:0"                json:"shipping_fee"`
	Active      bool   `gorm:"default:true"             json:"active"`
}

type Food struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Description  string `json:"description"`
	Price        int64  `gorm:"not null"                 json:"price"`
	RestaurantID uint   `gorm:"index;not null"           json:"restaurant_id"`
	ImageRef     string `json:"-"`
	IsAvailable  bool   `gorm:"default:true"             json:"is_available"`
}

type Address struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint   `gorm:"index;not null"           json:"user_id"`
	ReceiverName string `json:"receiver_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `gorm:"not null"                 json:"address"`
}

// Cart is the per-user root of pending purchases. ItemsNumber always equals
// the live count of its sub-carts; a cart with zero sub-carts is deleted, not kept.
type Cart struct {
	ID          uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint `gorm:"uniqueIndex;not null"     json:"user_id"`
	ItemsNumber int  `gorm:"default:0"                json:"items_number"`

	SubCarts []SubCart `gorm:"foreignKey:CartID" json:"sub_carts,omitempty"`
}

// SubCart groups cart items by restaurant. Totals are resummed from the child
// items after every mutation, never patched incrementally.
type SubCart struct {
	ID            uint  `gorm:"primaryKey;autoIncrement"                 json:"id"`
	CartID        uint  `gorm:"uniqueIndex:idx_cart_restaurant;not null" json:"cart_id"`
	RestaurantID  uint  `gorm:"uniqueIndex:idx_cart_restaurant;not null" json:"restaurant_id"`
	TotalPrice    int64 `gorm:"default:0"                                json:"total_price"`
	TotalQuantity int   `gorm:"default:0"                                json:"total_quantity"`

	Items []SubCartItem `gorm:"foreignKey:SubCartID" json:"items,omitempty"`
}

// SubCartItem is one food line inside a sub-cart. Price is always
// quantity * unit-price snapshot, never set independently.
type SubCartItem struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"              json:"id"`
	SubCartID    uint   `gorm:"uniqueIndex:idx_subcart_food;not null" json:"sub_cart_id"`
	FoodID       uint   `gorm:"uniqueIndex:idx_subcart_food;not null" json:"food_id"`
	RestaurantID uint   `gorm:"not null"                              json:"restaurant_id"`
	Quantity     int    `gorm:"default:1;check:quantity>0"            json:"quantity"`
	Price        int64  `gorm:"not null"                              json:"price"`
	Note         string `json:"note"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusAccepted   = "accepted"
	OrderStatusDelivering = "delivering"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// CanTransition reports whether an order may move between delivery statuses.
// Cancelled is reachable from any non-terminal state.
func CanTransition(from, to string) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusAccepted
	case OrderStatusAccepted:
		return to == OrderStatusDelivering
	case OrderStatusDelivering:
		return to == OrderStatusDelivered
	}
	return false
}

const (
	PaymentMethodCOD    = "cash_on_delivery"
	PaymentMethodWallet = "wallet"
)

type Order struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"index;not null"           json:"user_id"`
	RestaurantID   uint      `gorm:"index;not null"           json:"restaurant_id"`
	AddressID      uint      `gorm:"not null"                 json:"address_id"`
	ShippingFee    int64     `gorm:"default:0"                json:"shipping_fee"`
	Total          int64     `gorm:"not null"                 json:"total"`
	DeliveryStatus string    `gorm:"not null"                 json:"delivery_status"`
	OrderDate      time.Time `gorm:"not null"                 json:"order_date"`

	Details []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
}

// OrderDetail is immutable after checkout except for the Evaluated flag,
// which flips when a review is attached.
type OrderDetail struct {
	ID        uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint  `gorm:"index;not null"           json:"order_id"`
	FoodID    uint  `gorm:"not null"                 json:"food_id"`
	Quantity  int   `gorm:"not null"                 json:"quantity"`
	SubTotal  int64 `gorm:"not null"                 json:"sub_total"`
	Evaluated bool  `gorm:"default:false"            json:"evaluated"`
}

type Payment struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        uint      `gorm:"uniqueIndex;not null"     json:"order_id"`
	UserID         uint      `gorm:"index;not null"           json:"user_id"`
	Amount         int64     `gorm:"not null"                 json:"amount"`
	PaymentMethod  string    `gorm:"not null"                 json:"payment_method"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	IsSuccessful   bool      `gorm:"default:false"            json:"is_successful"`
	CreatedDate    time.Time `gorm:"not null"                 json:"created_date"`
}

type Review struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"index;not null"           json:"user_id"`
	OrderDetailID uint      `gorm:"uniqueIndex;not null"     json:"order_detail_id"`
	Stars         int       `gorm:"default:5"                json:"stars"`
	Comment       string    `json:"comment"`
	CreatedDate   time.Time `gorm:"not null"                 json:"created_date"`
}
