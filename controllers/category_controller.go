package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
)

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}

// ListCategories handles GET /api/categories
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	categories := []models.Category{}
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// GetCategory handles GET /api/categories/:id
func GetCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// CreateCategory handles POST /api/admin/categories
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
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

	category := models.Category{
		Name:     req.Name,
		Slug:     slugify(firstNonEmpty(req.Slug, req.Name)),
		ImageURL: req.ImageURL,
	}

	db := config.GetDB()
	if err := db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_EXISTS",
					"message": "A category with this name or slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /api/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	var req CategoryRequest
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
		"name":      req.Name,
		"slug":      slugify(firstNonEmpty(req.Slug, req.Name)),
		"image_url": req.ImageURL,
	}
	if err := db.Model(&category).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_EXISTS",
					"message": "A category with this name or slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/admin/categories/:id. Categories still
// referenced by products cannot be removed.
func DeleteCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check category usage",
			},
		})
		return
	}
	if productCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_IN_USE",
				"message": "Category still has products assigned to it",
			},
		})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// slugify lowercases and hyphenates a name for URL use
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
