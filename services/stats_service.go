package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/voltline/voltline-api/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DefaultStatsPeriodDays is the window applied when the caller does not
// supply a period.
const DefaultStatsPeriodDays = 30

// revenueChartDays is fixed: the chart always covers the trailing 7
// calendar days regardless of the requested period.
const revenueChartDays = 7

// FetchErrorMode selects how the aggregator treats failures of the
// independent side fetches (low stock, recent orders, top selling). The
// counts and window-orders fetches are always fatal.
type FetchErrorMode int

const (
	// FetchErrorsNonFatal logs a failed side fetch and continues with an
	// empty list.
	FetchErrorsNonFatal FetchErrorMode = iota
	// FetchErrorsFatal aborts the whole report on any failed fetch.
	FetchErrorsFatal
)

// DataAccessError wraps any underlying fetch failure during aggregation.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("stats: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// StatsOverview holds the all-time counts plus the windowed revenue sum.
type StatsOverview struct {
	TotalProducts   int64   `json:"totalProducts"`
	TotalCategories int64   `json:"totalCategories"`
	TotalOrders     int64   `json:"totalOrders"`
	TotalDistricts  int64   `json:"totalDistricts"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// OrderStatusCounts is the per-status histogram over the window orders.
// Unknown or legacy status values land in Other instead of disappearing.
type OrderStatusCounts struct {
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
	Other      int `json:"other"`
}

// TopSellingProduct is one ranked entry of the top-selling list.
type TopSellingProduct struct {
	Product       models.Product `json:"product"`
	TotalQuantity int            `json:"totalQuantity"`
}

// RevenuePoint is one day of the revenue chart.
type RevenuePoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD in the configured timezone
	Revenue float64 `json:"revenue"`
}

// StatsReport is the admin dashboard report. It is derived on every call
// and never persisted or cached.
type StatsReport struct {
	Overview           StatsOverview       `json:"overview"`
	OrderStatus        OrderStatusCounts   `json:"orderStatus"`
	LowStockProducts   []models.Product    `json:"lowStockProducts"`
	RecentOrders       []models.Order      `json:"recentOrders"`
	TopSellingProducts []TopSellingProduct `json:"topSellingProducts"`
	RevenueChart       []RevenuePoint      `json:"revenueChart"`
	Period             int                 `json:"period"`
}

// StorefrontStats is the fixed-shape report behind GET /api/stats.
type StorefrontStats struct {
	TotalOrders     int64   `json:"totalOrders"`
	TotalProducts   int64   `json:"totalProducts"`
	TotalCategories int64   `json:"totalCategories"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// TopSoldProduct mirrors TopSellingProduct with the storefront field name.
type TopSoldProduct struct {
	Product   models.Product `json:"product"`
	TotalSold int            `json:"totalSold"`
}

// StatsService aggregates dashboard statistics from the order, product,
// category and district tables. It is read-only and keeps no state between
// calls.
type StatsService struct {
	db   *gorm.DB
	loc  *time.Location
	mode FetchErrorMode
	now  func() time.Time
}

// NewStatsService creates a stats service. loc controls revenue-chart day
// bucketing; nil means UTC.
func NewStatsService(db *gorm.DB, loc *time.Location, mode FetchErrorMode) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		db:   db,
		loc:  loc,
		mode: mode,
		now:  time.Now,
	}
}

// SetNow overrides the clock (primarily for testing)
func (s *StatsService) SetNow(now func() time.Time) {
	s.now = now
}

// ComputeStats builds the admin dashboard report for the trailing
// periodDays window. The all-time counts and the window-orders fetch run
// concurrently and any failure among them aborts the report; the side
// fetches follow the configured FetchErrorMode.
func (s *StatsService) ComputeStats(periodDays int) (*StatsReport, error) {
	if periodDays <= 0 {
		periodDays = DefaultStatsPeriodDays
	}

	now := s.now()
	start := now.AddDate(0, 0, -periodDays)

	var (
		totalProducts   int64
		totalCategories int64
		totalOrders     int64
		totalDistricts  int64
		periodOrders    []models.Order
	)

	g := new(errgroup.Group)
	g.Go(func() error { return s.count(&models.Product{}, "count products", &totalProducts) })
	g.Go(func() error { return s.count(&models.Category{}, "count categories", &totalCategories) })
	g.Go(func() error { return s.count(&models.Order{}, "count orders", &totalOrders) })
	g.Go(func() error { return s.count(&models.District{}, "count districts", &totalDistricts) })
	g.Go(func() error {
		if err := s.db.Where("created_at BETWEEN ? AND ?", start, now).Find(&periodOrders).Error; err != nil {
			return &DataAccessError{Op: "fetch window orders", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &StatsReport{
		Overview: StatsOverview{
			TotalProducts:   totalProducts,
			TotalCategories: totalCategories,
			TotalOrders:     totalOrders,
			TotalDistricts:  totalDistricts,
		},
		Period: periodDays,
	}

	for _, order := range periodOrders {
		report.Overview.TotalRevenue += order.Revenue()
	}
	report.OrderStatus = partitionByStatus(periodOrders)
	report.RevenueChart = s.buildRevenueChart(periodOrders, now)

	lowStock, err := s.fetchLowStock(0)
	if err != nil {
		if s.mode == FetchErrorsFatal {
			return nil, err
		}
		log.Printf("%v (continuing with empty list)", err)
		lowStock = []models.Product{}
	}
	report.LowStockProducts = lowStock

	recent, err := s.fetchRecentOrders(10)
	if err != nil {
		if s.mode == FetchErrorsFatal {
			return nil, err
		}
		log.Printf("%v (continuing with empty list)", err)
		recent = []models.Order{}
	}
	report.RecentOrders = recent

	topSelling, err := s.fetchTopSelling(&start, &now, 5)
	if err != nil {
		if s.mode == FetchErrorsFatal {
			return nil, err
		}
		log.Printf("%v (continuing with empty list)", err)
		topSelling = []TopSellingProduct{}
	}
	report.TopSellingProducts = topSelling

	return report, nil
}

// Snapshot builds the storefront dashboard figures: all-time counts and
// revenue. List fetch failures are handled by the caller through the
// dedicated helpers; a failure here is always fatal.
func (s *StatsService) Snapshot() (*StorefrontStats, error) {
	stats := &StorefrontStats{}

	g := new(errgroup.Group)
	g.Go(func() error { return s.count(&models.Product{}, "count products", &stats.TotalProducts) })
	g.Go(func() error { return s.count(&models.Category{}, "count categories", &stats.TotalCategories) })
	g.Go(func() error { return s.count(&models.Order{}, "count orders", &stats.TotalOrders) })

	var allOrders []models.Order
	g.Go(func() error {
		if err := s.db.Find(&allOrders).Error; err != nil {
			return &DataAccessError{Op: "fetch orders", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, order := range allOrders {
		stats.TotalRevenue += order.Revenue()
	}
	return stats, nil
}

// LowStockProducts returns products under the stock threshold, ascending by
// quantity. limit <= 0 means unbounded.
func (s *StatsService) LowStockProducts(limit int) ([]models.Product, error) {
	return s.fetchLowStock(limit)
}

// RecentOrders returns the newest orders, any status, district preloaded.
func (s *StatsService) RecentOrders(limit int) ([]models.Order, error) {
	return s.fetchRecentOrders(limit)
}

// TopSellingAllTime ranks products by all-time ordered quantity.
func (s *StatsService) TopSellingAllTime(limit int) ([]TopSoldProduct, error) {
	ranked, err := s.fetchTopSelling(nil, nil, limit)
	if err != nil {
		return nil, err
	}
	sold := make([]TopSoldProduct, 0, len(ranked))
	for _, entry := range ranked {
		sold = append(sold, TopSoldProduct{Product: entry.Product, TotalSold: entry.TotalQuantity})
	}
	return sold, nil
}

func (s *StatsService) count(model interface{}, op string, out *int64) error {
	if err := s.db.Model(model).Count(out).Error; err != nil {
		return &DataAccessError{Op: op, Err: err}
	}
	return nil
}

func (s *StatsService) fetchLowStock(limit int) ([]models.Product, error) {
	query := s.db.Where("stock_quantity < ?", models.LowStockThreshold).
		Order("stock_quantity ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch low-stock products", Err: err}
	}
	return products, nil
}

func (s *StatsService) fetchRecentOrders(limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.Preload("District").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, &DataAccessError{Op: "fetch recent orders", Err: err}
	}
	return orders, nil
}

// fetchTopSelling groups order items by product and ranks by summed
// quantity. A nil window means all-time. Ties keep the order in which a
// product was first encountered in the item fetch.
func (s *StatsService) fetchTopSelling(start, end *time.Time, limit int) ([]TopSellingProduct, error) {
	query := s.db.Model(&models.OrderItem{}).Order("order_items.id ASC")
	if start != nil && end != nil {
		query = query.
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.created_at BETWEEN ? AND ?", *start, *end)
	}

	var items []models.OrderItem
	if err := query.Find(&items).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch order items", Err: err}
	}

	totals := make(map[uint]int)
	encounter := []uint{}
	for _, item := range items {
		if _, seen := totals[item.ProductID]; !seen {
			encounter = append(encounter, item.ProductID)
		}
		totals[item.ProductID] += item.Quantity
	}

	// Stable sort keeps encounter order for equal quantities
	sort.SliceStable(encounter, func(i, j int) bool {
		return totals[encounter[i]] > totals[encounter[j]]
	})
	if limit > 0 && len(encounter) > limit {
		encounter = encounter[:limit]
	}

	if len(encounter) == 0 {
		return []TopSellingProduct{}, nil
	}

	var products []models.Product
	if err := s.db.Where("id IN ?", encounter).Find(&products).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch top-selling products", Err: err}
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	ranked := make([]TopSellingProduct, 0, len(encounter))
	for _, productID := range encounter {
		product, ok := byID[productID]
		if !ok {
			// Product row deleted since the order was placed
			product = models.Product{ID: productID}
		}
		ranked = append(ranked, TopSellingProduct{
			Product:       product,
			TotalQuantity: totals[productID],
		})
	}
	return ranked, nil
}

// buildRevenueChart sums window-order revenue into one bucket per calendar
// day for the trailing 7 days. Day boundaries follow the configured
// timezone, not the server wall clock.
func (s *StatsService) buildRevenueChart(orders []models.Order, now time.Time) []RevenuePoint {
	local := now.In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	chart := make([]RevenuePoint, 0, revenueChartDays)
	for i := revenueChartDays - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var revenue float64
		for _, order := range orders {
			created := order.CreatedAt.In(s.loc)
			if !created.Before(dayStart) && created.Before(dayEnd) {
				revenue += order.Revenue()
			}
		}
		chart = append(chart, RevenuePoint{
			Date:    dayStart.Format("2006-01-02"),
			Revenue: revenue,
		})
	}
	return chart
}

func partitionByStatus(orders []models.Order) OrderStatusCounts {
	counts := OrderStatusCounts{}
	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusPending:
			counts.Pending++
		case models.OrderStatusConfirmed:
			counts.Confirmed++
		case models.OrderStatusProcessing:
			counts.Processing++
		case models.OrderStatusShipped:
			counts.Shipped++
		case models.OrderStatusDelivered:
			counts.Delivered++
		case models.OrderStatusCancelled:
			counts.Cancelled++
		default:
			counts.Other++
		}
	}
	return counts
}
