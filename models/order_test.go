package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableNames(t *testing.T) {
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_items", OrderItem{}.TableName())
}

func TestOrderRevenue(t *testing.T) {
	amount := 149.99
	withAmount := Order{TotalAmount: &amount}
	assert.Equal(t, 149.99, withAmount.Revenue())

	withoutAmount := Order{}
	assert.Equal(t, float64(0), withoutAmount.Revenue(), "nil total_amount should count as 0")
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, IsValidOrderStatus(s), "status %q should be valid", s)
	}
	assert.False(t, IsValidOrderStatus("returned"), "unknown status should be invalid")
	assert.False(t, IsValidOrderStatus(""), "empty status should be invalid")
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to delivered skips steps", OrderStatusPending, OrderStatusDelivered, false},
		{"confirmed to processing", OrderStatusConfirmed, OrderStatusProcessing, true},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled too late", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is immutable", OrderStatusDelivered, OrderStatusPending, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"no self transition", OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestProductIsLowStock(t *testing.T) {
	assert.True(t, Product{StockQuantity: 0}.IsLowStock())
	assert.True(t, Product{StockQuantity: LowStockThreshold - 1}.IsLowStock())
	assert.False(t, Product{StockQuantity: LowStockThreshold}.IsLowStock(), "threshold itself is not low stock")
}
