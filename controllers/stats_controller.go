package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
	"github.com/voltline/voltline-api/services"
)

// newStatsService builds a stats service from the loaded configuration.
func newStatsService() *services.StatsService {
	cfg := config.GetConfig()

	loc := time.UTC
	if cfg != nil && cfg.StatsTimezone != "" {
		parsed, err := time.LoadLocation(cfg.StatsTimezone)
		if err != nil {
			log.Printf("Invalid STATS_TIMEZONE %q, falling back to UTC: %v", cfg.StatsTimezone, err)
		} else {
			loc = parsed
		}
	}

	mode := services.FetchErrorsNonFatal
	if cfg != nil && cfg.StatsStrictErrors {
		mode = services.FetchErrorsFatal
	}

	return services.NewStatsService(config.GetDB(), loc, mode)
}

// GetStats handles GET /api/stats - the public storefront dashboard. The
// headline figures are required; each list degrades to empty on failure.
func GetStats(c *gin.Context) {
	svc := newStatsService()

	snapshot, err := svc.Snapshot()
	if err != nil {
		log.Printf("Storefront stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch stats",
		})
		return
	}

	recentOrders, err := svc.RecentOrders(5)
	if err != nil {
		log.Printf("%v (continuing with empty list)", err)
		recentOrders = []models.Order{}
	}

	lowStock, err := svc.LowStockProducts(5)
	if err != nil {
		log.Printf("%v (continuing with empty list)", err)
		lowStock = []models.Product{}
	}

	topSelling, err := svc.TopSellingAllTime(5)
	if err != nil {
		log.Printf("%v (continuing with empty list)", err)
		topSelling = []services.TopSoldProduct{}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":              snapshot,
		"recentOrders":       recentOrders,
		"lowStockProducts":   lowStock,
		"topSellingProducts": topSelling,
	})
}

// GetAdminStats handles GET /api/admin/stats - the admin dashboard report
// over a trailing period given in days (default 30)
func GetAdminStats(c *gin.Context) {
	periodDays, err := strconv.Atoi(c.DefaultQuery("period", "30"))
	if err != nil || periodDays <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "period must be a positive number of days",
			},
		})
		return
	}

	report, err := newStatsService().ComputeStats(periodDays)
	if err != nil {
		log.Printf("Admin stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STATS_UNAVAILABLE",
				"message": "Failed to compute statistics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}
