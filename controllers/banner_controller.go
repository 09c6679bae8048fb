package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
	"github.com/voltline/voltline-api/services"
	"github.com/voltline/voltline-api/utils"
)

// ListBanners handles GET /api/banners - active slider content ordered by position
func ListBanners(c *gin.Context) {
	db := config.GetDB()

	banners := []models.Banner{}
	if err := db.Where("active = ?", true).Order("position ASC").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch banners",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banners,
	})
}

// ListAllBanners handles GET /api/admin/banners - includes inactive slides
func ListAllBanners(c *gin.Context) {
	db := config.GetDB()

	banners := []models.Banner{}
	if err := db.Order("position ASC").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch banners",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banners,
	})
}

// UploadBanner handles POST /api/admin/banners - multipart form with the
// slide image plus optional title/link/position fields
func UploadBanner(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_IMAGE",
				"message": "No image uploaded",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		uploadErr, _ := err.(*utils.FileUploadError)
		code := "INVALID_FILE"
		if uploadErr != nil {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader, "banners")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload banner image",
			},
		})
		return
	}

	imageURL, err := s3Service.GetPresignedURL(s3Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to resolve banner image URL",
			},
		})
		return
	}

	position, _ := strconv.Atoi(c.DefaultPostForm("position", "0"))
	banner := models.Banner{
		Title:      c.PostForm("title"),
		ImageS3Key: s3Key,
		ImageURL:   imageURL,
		LinkURL:    c.PostForm("link_url"),
		Position:   position,
		Active:     true,
	}

	db := config.GetDB()
	if err := db.Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save banner",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    banner,
	})
}

// UpdateBannerRequest represents the request body for updating banner metadata
type UpdateBannerRequest struct {
	Title    *string `json:"title"`
	LinkURL  *string `json:"link_url"`
	Position *int    `json:"position"`
	Active   *bool   `json:"active"`
}

// UpdateBanner handles PUT /api/admin/banners/:id
func UpdateBanner(c *gin.Context) {
	db := config.GetDB()

	var banner models.Banner
	if err := db.First(&banner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BANNER_NOT_FOUND",
				"message": "Banner not found",
			},
		})
		return
	}

	var req UpdateBannerRequest
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
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.LinkURL != nil {
		updates["link_url"] = *req.LinkURL
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := db.Model(&banner).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update banner",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banner,
	})
}

// DeleteBanner handles DELETE /api/admin/banners/:id - removes the database
// row and then the stored image (best effort)
func DeleteBanner(c *gin.Context) {
	db := config.GetDB()

	var banner models.Banner
	if err := db.First(&banner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BANNER_NOT_FOUND",
				"message": "Banner not found",
			},
		})
		return
	}

	if err := db.Delete(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete banner",
			},
		})
		return
	}

	if s3Service := services.GetS3Service(); s3Service != nil && banner.ImageS3Key != "" {
		// Orphaned objects are acceptable; the row is already gone
		_ = s3Service.DeleteFile(banner.ImageS3Key)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
