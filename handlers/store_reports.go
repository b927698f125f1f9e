package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DailySalesReport struct {
	Date        string `json:"date"`
	OrderCount  int    `json:"order_count"`
	TotalSales  int    `json:"total_sales"`
	PopularMenu string `json:"popular_menu"`
}

type MenuSalesReport struct {
	MenuID     uint   `json:"menu_id"`
	MenuName   string `json:"menu_name"`
	OrderCount int    `json:"order_count"`
	TotalSales int    `json:"total_sales"`
}

type SalesReportResponse struct {
	Period       string             `json:"period"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	TotalOrders  int                `json:"total_orders"`
	TotalSales   int                `json:"total_sales"`
	DailyReports []DailySalesReport `json:"daily_reports"`
	MenuReports  []MenuSalesReport  `json:"menu_reports"`
}

// GetSalesReport aggregates non-cancelled orders over a period window.
// Without explicit dates, daily covers the last 7 days, weekly 30 and
// monthly 90, always ending today.
func GetSalesReport(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	period := c.DefaultQuery("period", "daily")
	var days int
	switch period {
	case "daily":
		days = 7
	case "weekly":
		days = 30
	case "monthly":
		days = 90
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period. Use daily, weekly or monthly"})
		return
	}

	end := dayStart(time.Now())
	if s := c.Query("end_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		end = t
	}
	start := end.AddDate(0, 0, -(days - 1))
	if s := c.Query("start_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		start = t
	}
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must not be after end_date"})
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Menu").
		Where("store_id = ? AND status <> ? AND ordered_at >= ? AND ordered_at < ?",
			storeID, models.StatusCancelled, start, end.AddDate(0, 0, 1)).
		Find(&orders).Error; err != nil {
		logrus.Errorf("Failed to load sales report orders with error: %+v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales report"})
		return
	}

	type dayAgg struct {
		count      int
		sales      int
		menuCounts map[string]int
	}
	dailyAgg := map[string]*dayAgg{}
	menuAgg := map[uint]*MenuSalesReport{}

	resp := SalesReportResponse{
		Period:       period,
		StartDate:    start.Format("2006-01-02"),
		EndDate:      end.Format("2006-01-02"),
		DailyReports: []DailySalesReport{},
		MenuReports:  []MenuSalesReport{},
	}

	for _, o := range orders {
		resp.TotalOrders++
		resp.TotalSales += o.TotalPrice

		menuName := ""
		if o.Menu != nil {
			menuName = o.Menu.Name
		}

		key := dayStart(o.OrderedAt).Format("2006-01-02")
		da := dailyAgg[key]
		if da == nil {
			da = &dayAgg{menuCounts: map[string]int{}}
			dailyAgg[key] = da
		}
		da.count++
		da.sales += o.TotalPrice
		da.menuCounts[menuName]++

		ma := menuAgg[o.MenuID]
		if ma == nil {
			ma = &MenuSalesReport{MenuID: o.MenuID, MenuName: menuName}
			menuAgg[o.MenuID] = ma
		}
		ma.OrderCount++
		ma.TotalSales += o.TotalPrice
	}

	// One row per day in the window, zero days included
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		report := DailySalesReport{Date: key}
		if da := dailyAgg[key]; da != nil {
			report.OrderCount = da.count
			report.TotalSales = da.sales
			best, bestCount := "", 0
			for name, n := range da.menuCounts {
				if n > bestCount || (n == bestCount && name < best) {
					best, bestCount = name, n
				}
			}
			report.PopularMenu = best
		}
		resp.DailyReports = append(resp.DailyReports, report)
	}

	for _, ma := range menuAgg {
		resp.MenuReports = append(resp.MenuReports, *ma)
	}
	sort.Slice(resp.MenuReports, func(i, j int) bool {
		if resp.MenuReports[i].TotalSales != resp.MenuReports[j].TotalSales {
			return resp.MenuReports[i].TotalSales > resp.MenuReports[j].TotalSales
		}
		return resp.MenuReports[i].MenuID < resp.MenuReports[j].MenuID
	})

	c.JSON(http.StatusOK, resp)
}
