package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
)

func seedStatsData(t *testing.T) {
	db := config.GetDB()

	db.Create(&models.Category{Name: "Audio", Slug: "audio"})
	db.Create(&models.Category{Name: "Displays", Slug: "displays"})

	headphones := models.Product{Name: "Headphones", SKU: "ST-1", Price: 60, StockQuantity: 4}
	monitor := models.Product{Name: "Monitor", SKU: "ST-2", Price: 200, StockQuantity: 25}
	db.Create(&headphones)
	db.Create(&monitor)

	amount := 260.0
	order := models.Order{
		OrderNumber: "VL-STATS-1",
		CustomerID:  1,
		TotalAmount: &amount,
		Status:      models.OrderStatusDelivered,
		CreatedAt:   time.Now().Add(-2 * time.Hour),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	db.Create(&models.OrderItem{OrderID: order.ID, ProductID: headphones.ID, Quantity: 1})
	db.Create(&models.OrderItem{OrderID: order.ID, ProductID: monitor.ID, Quantity: 1})
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(&config.Config{StatsTimezone: "UTC"})
	seedStatsData(t)

	router := setupTestRouter()
	router.GET("/stats", GetStats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)

	stats := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalOrders"])
	assert.Equal(t, float64(2), stats["totalProducts"])
	assert.Equal(t, float64(2), stats["totalCategories"])
	assert.Equal(t, 260.0, stats["totalRevenue"])

	recentOrders := response["recentOrders"].([]interface{})
	assert.Len(t, recentOrders, 1)

	lowStock := response["lowStockProducts"].([]interface{})
	assert.Len(t, lowStock, 1)
	assert.Equal(t, "Headphones", lowStock[0].(map[string]interface{})["name"])

	topSelling := response["topSellingProducts"].([]interface{})
	assert.Len(t, topSelling, 2)
	first := topSelling[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["totalSold"])
	assert.NotNil(t, first["product"])
}

func TestGetStats_EmptyDatabase(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(&config.Config{StatsTimezone: "UTC"})

	router := setupTestRouter()
	router.GET("/stats", GetStats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	stats := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["totalOrders"])
	assert.Equal(t, 0.0, stats["totalRevenue"])
	assert.Empty(t, response["recentOrders"])
	assert.Empty(t, response["lowStockProducts"])
	assert.Empty(t, response["topSellingProducts"])
}

func TestGetAdminStats(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(&config.Config{StatsTimezone: "UTC"})
	seedStatsData(t)

	router := setupTestRouter()
	router.GET("/admin/stats", GetAdminStats)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(30), data["period"])

	overview := data["overview"].(map[string]interface{})
	assert.Equal(t, float64(2), overview["totalProducts"])
	assert.Equal(t, float64(1), overview["totalOrders"])
	assert.Equal(t, 260.0, overview["totalRevenue"])

	orderStatus := data["orderStatus"].(map[string]interface{})
	assert.Equal(t, float64(1), orderStatus["delivered"])
	assert.Equal(t, float64(0), orderStatus["pending"])
	assert.Equal(t, float64(0), orderStatus["other"])

	chart := data["revenueChart"].([]interface{})
	assert.Len(t, chart, 7)

	assert.Len(t, data["lowStockProducts"].([]interface{}), 1)
	assert.Len(t, data["recentOrders"].([]interface{}), 1)
	assert.Len(t, data["topSellingProducts"].([]interface{}), 2)
}

func TestGetAdminStats_CustomPeriod(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(&config.Config{StatsTimezone: "UTC"})

	router := setupTestRouter()
	router.GET("/admin/stats", GetAdminStats)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats?period=7", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["period"])
}

func TestGetAdminStats_InvalidPeriod(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(&config.Config{StatsTimezone: "UTC"})

	router := setupTestRouter()
	router.GET("/admin/stats", GetAdminStats)

	tests := []string{"abc", "-5", "0"}
	for _, period := range tests {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats?period="+period, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "period=%s", period)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.False(t, response["success"].(bool))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
	}
}
