package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
)

// ExportProducts handles GET /api/admin/products/export - downloads the full
// catalog as an Excel workbook
func ExportProducts(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	if err := db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": "Failed to create workbook",
			},
		})
		return
	}

	headers := []string{
		"ID", "Name", "SKU", "Brand", "Description",
		"Price", "RegularPrice", "Stock", "Category", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.SKU)
		row.AddCell().SetValue(p.Brand)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.RegularPrice)
		row.AddCell().SetValue(p.StockQuantity)
		if p.Category != nil {
			row.AddCell().SetValue(p.Category.Name)
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		// Headers are already out; nothing useful left to send
		return
	}
}
