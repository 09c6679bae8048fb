package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
	"gorm.io/gorm"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	SKU           string   `json:"sku" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	RegularPrice  float64  `json:"regular_price"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	CategoryID    *uint    `json:"category_id"`
	ImageURLs     []string `json:"image_urls"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Brand         *string  `json:"brand"`
	Price         *float64 `json:"price"`
	RegularPrice  *float64 `json:"regular_price"`
	StockQuantity *int     `json:"stock_quantity"`
	CategoryID    *uint    `json:"category_id"`
}

// ListProducts handles GET /api/products - storefront catalog browsing with
// search, category and price filters, and pagination
func ListProducts(c *gin.Context) {
	db := config.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.Model(&models.Product{}).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		cid, err := strconv.ParseUint(categoryID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid category_id",
				},
			})
			return
		}
		query = query.Where("category_id = ?", uint(cid))
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		mp, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid min_price",
				},
			})
			return
		}
		query = query.Where("price >= ?", mp)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		mp, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid max_price",
				},
			})
			return
		}
		query = query.Where("price <= ?", mp)
	}

	sortBy := c.DefaultQuery("sort_by", "created_at")
	switch sortBy {
	case "created_at", "price", "name", "stock_quantity":
	default:
		sortBy = "created_at"
	}
	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count products",
			},
		})
		return
	}

	var products []models.Product
	err := query.Order(sortBy + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// GetProduct handles GET /api/products/:id
func GetProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	err := db.Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&product, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct handles POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
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

	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Referenced category does not exist",
				},
			})
			return
		}
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Price:         req.Price,
		RegularPrice:  req.RegularPrice,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}
	for i, url := range req.ImageURLs {
		product.Images = append(product.Images, models.ProductImage{URL: url, Position: i})
	}

	if err := db.Create(&product).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SKU_EXISTS",
					"message": "A product with this SKU already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	var req UpdateProductRequest
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

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must be greater than zero",
				},
			})
			return
		}
		updates["price"] = *req.Price
	}
	if req.RegularPrice != nil {
		updates["regular_price"] = *req.RegularPrice
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Stock quantity cannot be negative",
				},
			})
			return
		}
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Referenced category does not exist",
				},
			})
			return
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) > 0 {
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update product",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/admin/products/:id (soft delete)
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// ListLowStockProducts handles GET /api/admin/products/low-stock
func ListLowStockProducts(c *gin.Context) {
	db := config.GetDB()

	products := []models.Product{}
	err := db.Where("stock_quantity < ?", models.LowStockThreshold).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch low-stock products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}
