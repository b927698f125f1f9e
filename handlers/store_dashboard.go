package handlers

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PopularMenu struct {
	MenuID       uint   `json:"menu_id"`
	MenuName     string `json:"menu_name"`
	OrderCount   int    `json:"order_count"`
	TotalRevenue int    `json:"total_revenue"`
}

type HourlyOrders struct {
	Hour       int `json:"hour"`
	OrderCount int `json:"order_count"`
}

type YesterdayComparison struct {
	OrdersChange         int     `json:"orders_change"`
	OrdersChangePercent  float64 `json:"orders_change_percent"`
	RevenueChange        int     `json:"revenue_change"`
	RevenueChangePercent float64 `json:"revenue_change_percent"`
}

type DashboardResponse struct {
	TotalOrders         int                 `json:"total_orders"`
	PendingOrders       int                 `json:"pending_orders"`
	ConfirmedOrders     int                 `json:"confirmed_orders"`
	PreparingOrders     int                 `json:"preparing_orders"`
	ReadyOrders         int                 `json:"ready_orders"`
	CompletedOrders     int                 `json:"completed_orders"`
	CancelledOrders     int                 `json:"cancelled_orders"`
	TotalSales          int                 `json:"total_sales"`
	TodayRevenue        int                 `json:"today_revenue"`
	AverageOrderValue   float64             `json:"average_order_value"`
	YesterdayComparison YesterdayComparison `json:"yesterday_comparison"`
	PopularMenus        []PopularMenu       `json:"popular_menus"`
	HourlyOrders        []HourlyOrders      `json:"hourly_orders"`
}

// dayStart truncates a time to local midnight
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// percentChange is the day-over-day delta as a percentage of yesterday,
// rounded to one decimal. A zero yesterday maps to +100% (or 0% if today is
// also zero) so the dashboard never divides by zero.
func percentChange(today, yesterday int) float64 {
	if yesterday == 0 {
		if today > 0 {
			return 100.0
		}
		return 0.0
	}
	return math.Round(float64(today-yesterday)/float64(yesterday)*1000) / 10
}

// GetDashboard aggregates today's orders for the caller's store.
// Cancelled orders count toward total_orders but never toward revenue,
// averages, popularity or the day-over-day comparison.
func GetDashboard(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	now := time.Now()
	todayStart := dayStart(now)
	todayEnd := todayStart.AddDate(0, 0, 1)

	var todays []models.Order
	if err := config.DB.
		Where("store_id = ? AND ordered_at >= ? AND ordered_at < ?", storeID, todayStart, todayEnd).
		Find(&todays).Error; err != nil {
		logrus.Errorf("Failed to load dashboard orders with error: %+v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	resp := DashboardResponse{
		PopularMenus: []PopularMenu{},
		HourlyOrders: make([]HourlyOrders, 24),
	}

	statusCounts := map[models.OrderStatus]int{}
	menuStats := map[uint]*PopularMenu{}
	var hourBuckets [24]int
	nonCancelled := 0

	for _, o := range todays {
		resp.TotalOrders++
		statusCounts[o.Status]++
		hourBuckets[o.OrderedAt.Hour()]++
		if o.Status == models.StatusCancelled {
			continue
		}
		nonCancelled++
		resp.TotalSales += o.TotalPrice
		pm := menuStats[o.MenuID]
		if pm == nil {
			pm = &PopularMenu{MenuID: o.MenuID}
			menuStats[o.MenuID] = pm
		}
		pm.OrderCount++
		pm.TotalRevenue += o.TotalPrice
	}

	resp.PendingOrders = statusCounts[models.StatusPending]
	resp.ConfirmedOrders = statusCounts[models.StatusConfirmed]
	resp.PreparingOrders = statusCounts[models.StatusPreparing]
	resp.ReadyOrders = statusCounts[models.StatusReady]
	resp.CompletedOrders = statusCounts[models.StatusCompleted]
	resp.CancelledOrders = statusCounts[models.StatusCancelled]
	resp.TodayRevenue = resp.TotalSales
	if nonCancelled > 0 {
		resp.AverageOrderValue = float64(resp.TotalSales) / float64(nonCancelled)
	}

	for h := 0; h < 24; h++ {
		resp.HourlyOrders[h] = HourlyOrders{Hour: h, OrderCount: hourBuckets[h]}
	}

	// Resolve menu names for the popularity ranking
	if len(menuStats) > 0 {
		ids := make([]uint, 0, len(menuStats))
		for id := range menuStats {
			ids = append(ids, id)
		}
		var menus []models.Menu
		config.DB.Where("id IN ?", ids).Find(&menus)
		for _, m := range menus {
			menuStats[m.ID].MenuName = m.Name
		}

		ranked := make([]PopularMenu, 0, len(menuStats))
		for _, pm := range menuStats {
			ranked = append(ranked, *pm)
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].OrderCount != ranked[j].OrderCount {
				return ranked[i].OrderCount > ranked[j].OrderCount
			}
			if ranked[i].TotalRevenue != ranked[j].TotalRevenue {
				return ranked[i].TotalRevenue > ranked[j].TotalRevenue
			}
			return ranked[i].MenuID < ranked[j].MenuID
		})
		if len(ranked) > 3 {
			ranked = ranked[:3]
		}
		resp.PopularMenus = ranked
	}

	// Yesterday's non-cancelled orders for the comparison block
	var yesterdays []models.Order
	config.DB.
		Where("store_id = ? AND ordered_at >= ? AND ordered_at < ?", storeID, todayStart.AddDate(0, 0, -1), todayStart).
		Find(&yesterdays)

	yCount, yRevenue := 0, 0
	for _, o := range yesterdays {
		if o.Status == models.StatusCancelled {
			continue
		}
		yCount++
		yRevenue += o.TotalPrice
	}
	resp.YesterdayComparison = YesterdayComparison{
		OrdersChange:         nonCancelled - yCount,
		OrdersChangePercent:  percentChange(nonCancelled, yCount),
		RevenueChange:        resp.TotalSales - yRevenue,
		RevenueChangePercent: percentChange(resp.TotalSales, yRevenue),
	}

	c.JSON(http.StatusOK, resp)
}

type WeeklySalesResponse struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// GetWeeklySales returns a seven-day revenue series ending today
func GetWeeklySales(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	todayStart := dayStart(time.Now())
	weekStart := todayStart.AddDate(0, 0, -6)

	var orders []models.Order
	if err := config.DB.
		Where("store_id = ? AND status <> ? AND ordered_at >= ? AND ordered_at < ?",
			storeID, models.StatusCancelled, weekStart, todayStart.AddDate(0, 0, 1)).
		Find(&orders).Error; err != nil {
		logrus.Errorf("Failed to load weekly sales with error: %+v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly sales"})
		return
	}

	resp := WeeklySalesResponse{
		Labels: make([]string, 7),
		Data:   make([]int, 7),
	}
	for i := 0; i < 7; i++ {
		resp.Labels[i] = weekStart.AddDate(0, 0, i).Format("01/02")
	}
	for _, o := range orders {
		day := dayStart(o.OrderedAt)
		idx := int(day.Sub(weekStart).Hours() / 24)
		if idx >= 0 && idx < 7 {
			resp.Data[idx] += o.TotalPrice
		}
	}

	c.JSON(http.StatusOK, resp)
}
