package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
	"github.com/voltline/voltline-api/services"
	"gorm.io/gorm"
)

// OrderItemRequest is one product line of a checkout request
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName  string             `json:"customer_name" binding:"required"`
	Phone         string             `json:"phone" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	DistrictID    *uint              `json:"district_id"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=card cod"`
}

// UpdateOrderStatusRequest represents the request body for a status transition
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest represents the request body for a payment update
type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required"`
}

// generateOrderNumber builds a short human-readable order reference
func generateOrderNumber() string {
	return "VL-" + strings.ToUpper(uuid.New().String()[:8])
}

// CreateOrder handles POST /api/orders - checkout. Stock is checked and
// decremented inside a single transaction so concurrent orders cannot
// oversell a product.
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var shippingCost float64
	if req.DistrictID != nil {
		var district models.District
		if err := db.First(&district, *req.DistrictID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DISTRICT_NOT_FOUND",
					"message": "Referenced district does not exist",
				},
			})
			return
		}
		shippingCost = district.ShippingCost
	}

	order := models.Order{
		OrderNumber:   generateOrderNumber(),
		CustomerID:    user.ID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		DistrictID:    req.DistrictID,
		ShippingCost:  shippingCost,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		total := shippingCost

		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return &orderError{
					status:  http.StatusBadRequest,
					code:    "PRODUCT_NOT_FOUND",
					message: fmt.Sprintf("Product %d does not exist", item.ProductID),
				}
			}
			if product.StockQuantity < item.Quantity {
				return &orderError{
					status:  http.StatusConflict,
					code:    "INSUFFICIENT_STOCK",
					message: fmt.Sprintf("Not enough stock for %s", product.Name),
				}
			}

			if err := tx.Model(&product).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
			})
			total += product.Price * float64(item.Quantity)
		}

		order.TotalAmount = &total
		return tx.Create(&order).Error
	})
	if txErr != nil {
		if oe, ok := txErr.(*orderError); ok {
			c.JSON(oe.status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    oe.code,
					"message": oe.message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Load relationships to return complete data
	if err := db.Preload("Customer").Preload("District").Preload("Items").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	// Confirmation email is best effort
	if emailService := services.GetEmailService(); emailService != nil {
		if err := emailService.SendOrderConfirmation(&order, user.Email); err != nil {
			log.Printf("Order %s placed but confirmation email failed: %v", order.OrderNumber, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/orders - the caller's own orders, newest first
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Order{}).Where("customer_id = ?", user.ID)
	listOrders(c, query)
}

// ListAdminOrders handles GET /api/admin/orders - all orders with an
// optional status filter
func ListAdminOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		if !models.IsValidOrderStatus(models.OrderStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown order status filter",
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	listOrders(c, query)
}

// listOrders applies pagination and renders the shared order list response
func listOrders(c *gin.Context, query *gorm.DB) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	err := query.Preload("Customer").Preload("District").Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// GetOrder handles GET /api/orders/:id - owner or admin only
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	err := db.Preload("Customer").Preload("District").Preload("Items").
		First(&order, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.CustomerID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id/status. Transitions
// follow the order lifecycle table; a cancelled order returns its stock.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if !models.IsValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown order status",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if !models.CanTransitionTo(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS_TRANSITION",
				"message": fmt.Sprintf("Cannot move order from %s to %s", order.Status, req.Status),
			},
		})
		return
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if req.Status == models.OrderStatusCancelled {
			// Return reserved stock
			for _, item := range order.Items {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&order).Update("status", req.Status).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdatePaymentStatus handles PUT /api/admin/orders/:id/payment
func UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if !models.IsValidPaymentStatus(req.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown payment status",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Model(&order).Update("payment_status", req.PaymentStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update payment status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// orderError carries an HTTP status and code out of a checkout transaction
type orderError struct {
	status  int
	code    string
	message string
}

func (e *orderError) Error() string {
	return e.message
}
