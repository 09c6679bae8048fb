package models

import (
	"time"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // confirmed by the shop
	OrderStatusProcessing OrderStatus = "processing" // being picked and packed
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled before shipping

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderStatuses lists every known order status in histogram order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// orderTransitions maps each status to the statuses it may move to.
// Delivered orders are immutable except for these transitions; cancelled is
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidOrderStatus reports whether s is one of the known order statuses.
func IsValidOrderStatus(s OrderStatus) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsValidPaymentStatus reports whether s is one of the known payment statuses.
func IsValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status from may move to status to.
func CanTransitionTo(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// Order represents a placed storefront order
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	Customer      User          `gorm:"foreignKey:CustomerID" json:"customer"`
	CustomerName  string        `json:"customer_name"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	DistrictID    *uint         `gorm:"index" json:"district_id"`
	District      *District     `gorm:"foreignKey:DistrictID" json:"district,omitempty"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingCost  float64       `json:"shipping_cost"`
	TotalAmount   *float64      `json:"total_amount"` // nullable; treated as 0 in revenue sums
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod string        `json:"payment_method"` // e.g. "card", "cod"
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Revenue returns the order's contribution to revenue sums (nil amount is 0).
func (o Order) Revenue() float64 {
	if o.TotalAmount == nil {
		return 0
	}
	return *o.TotalAmount
}

// OrderItem is one product line of an order
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	Product     Product `gorm:"foreignKey:ProductID" json:"-"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `gorm:"not null;check:quantity > 0" json:"quantity"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
