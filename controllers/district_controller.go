package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
)

// DistrictRequest represents the request body for creating or updating a district
type DistrictRequest struct {
	Name         string   `json:"name" binding:"required"`
	City         string   `json:"city"`
	ShippingCost *float64 `json:"shipping_cost" binding:"required,gte=0"`
}

// ListDistricts handles GET /api/districts - delivery zones shown at checkout
func ListDistricts(c *gin.Context) {
	db := config.GetDB()

	districts := []models.District{}
	if err := db.Order("name ASC").Find(&districts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch districts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    districts,
	})
}

// CreateDistrict handles POST /api/admin/districts
func CreateDistrict(c *gin.Context) {
	var req DistrictRequest
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

	district := models.District{
		Name:         req.Name,
		City:         req.City,
		ShippingCost: *req.ShippingCost,
	}

	db := config.GetDB()
	if err := db.Create(&district).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DISTRICT_EXISTS",
					"message": "A district with this name already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create district",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    district,
	})
}

// UpdateDistrict handles PUT /api/admin/districts/:id
func UpdateDistrict(c *gin.Context) {
	db := config.GetDB()

	var district models.District
	if err := db.First(&district, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRICT_NOT_FOUND",
				"message": "District not found",
			},
		})
		return
	}

	var req DistrictRequest
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

	updates := map[string]interface{}{
		"name":          req.Name,
		"city":          req.City,
		"shipping_cost": *req.ShippingCost,
	}
	if err := db.Model(&district).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DISTRICT_EXISTS",
					"message": "A district with this name already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update district",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    district,
	})
}

// DeleteDistrict handles DELETE /api/admin/districts/:id
func DeleteDistrict(c *gin.Context) {
	db := config.GetDB()

	var district models.District
	if err := db.First(&district, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRICT_NOT_FOUND",
				"message": "District not found",
			},
		})
		return
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("district_id = ?", district.ID).Count(&orderCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check district usage",
			},
		})
		return
	}
	if orderCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DISTRICT_IN_USE",
				"message": "District is referenced by existing orders",
			},
		})
		return
	}

	if err := db.Delete(&district).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete district",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
