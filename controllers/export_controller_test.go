package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tealeg/xlsx"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
)

func TestExportProducts(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	category := models.Category{Name: "Audio", Slug: "audio"}
	db.Create(&category)
	db.Create(&models.Product{Name: "Headphones", SKU: "EXP-1", Brand: "Soundline", Price: 120, StockQuantity: 15, CategoryID: &category.ID})
	db.Create(&models.Product{Name: "Charger", SKU: "EXP-2", Price: 25, StockQuantity: 40})

	router := setupTestRouter()
	router.GET("/admin/products/export", ExportProducts)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/export", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=products.xlsx", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))

	// The body is a readable workbook with a header row plus one row per product
	file, err := xlsx.OpenBinary(w.Body.Bytes())
	assert.NoError(t, err)
	assert.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	assert.Equal(t, 3, sheet.MaxRow)

	header := sheet.Rows[0]
	assert.Equal(t, "ID", header.Cells[0].String())
	assert.Equal(t, "Name", header.Cells[1].String())
	assert.Equal(t, "SKU", header.Cells[2].String())

	first := sheet.Rows[1]
	assert.Equal(t, "Headphones", first.Cells[1].String())
	assert.Equal(t, "EXP-1", first.Cells[2].String())
	assert.Equal(t, "Audio", first.Cells[8].String())

	second := sheet.Rows[2]
	assert.Equal(t, "Charger", second.Cells[1].String())
	assert.Equal(t, "", second.Cells[8].String()) // uncategorized
}

func TestExportProducts_EmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.GET("/admin/products/export", ExportProducts)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/export", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, 1, file.Sheets[0].MaxRow) // header only
}
