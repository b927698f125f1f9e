package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/ichi1107/bento-order-system/handlers"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// todayAt pins a timestamp to a given hour of the current local day.
func todayAt(hour int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.Local)
}

func TestDashboard(t *testing.T) {
	r := setupAPI(t)

	store := createStore(t, "Bento Ichi")
	rivalStore := createStore(t, "Bento Ni")
	staff := createStaff(t, "staff1", store.ID, models.RoleNameStaff)
	customer := createCustomer(t, "kenji")

	karaage := createMenu(t, store.ID, "Karaage Bento", 650)
	salmon := createMenu(t, store.ID, "Salmon Bento", 800)
	premium := createMenu(t, store.ID, "Premium Bento", 1200)
	rivalMenu := createMenu(t, rivalStore.ID, "Rival Bento", 700)

	place := func(menu *models.Menu, storeID uint, total int, status models.OrderStatus, at time.Time) {
		createOrder(t, models.Order{
			UserID: customer.ID, MenuID: menu.ID, StoreID: storeID,
			Quantity: 1, TotalPrice: total, Status: status, OrderedAt: at,
		})
	}

	// Today: two karaage at 09:00, salmon at 12:00 twice, a cancelled premium
	// at 12:00 and one more karaage at 18:00
	place(karaage, store.ID, 650, models.StatusPending, todayAt(9))
	place(karaage, store.ID, 1300, models.StatusConfirmed, todayAt(9))
	place(salmon, store.ID, 800, models.StatusPreparing, todayAt(12))
	place(salmon, store.ID, 800, models.StatusCompleted, todayAt(12))
	place(premium, store.ID, 1200, models.StatusCancelled, todayAt(12))
	place(karaage, store.ID, 650, models.StatusReady, todayAt(18))

	// Yesterday: two completed orders and one cancelled
	place(karaage, store.ID, 650, models.StatusCompleted, todayAt(12).AddDate(0, 0, -1))
	place(salmon, store.ID, 800, models.StatusCompleted, todayAt(12).AddDate(0, 0, -1))
	place(premium, store.ID, 1200, models.StatusCancelled, todayAt(12).AddDate(0, 0, -1))

	// Another store's order today must never leak in
	place(rivalMenu, rivalStore.ID, 700, models.StatusPending, todayAt(12))

	w := doJSON(t, r, http.MethodGet, "/api/store/dashboard", accessToken(t, staff), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handlers.DashboardResponse
	decodeBody(t, w, &resp)

	t.Run("status counts include cancelled orders", func(t *testing.T) {
		assert.Equal(t, 6, resp.TotalOrders)
		assert.Equal(t, 1, resp.PendingOrders)
		assert.Equal(t, 1, resp.ConfirmedOrders)
		assert.Equal(t, 1, resp.PreparingOrders)
		assert.Equal(t, 1, resp.ReadyOrders)
		assert.Equal(t, 1, resp.CompletedOrders)
		assert.Equal(t, 1, resp.CancelledOrders)
	})

	t.Run("revenue excludes cancelled orders", func(t *testing.T) {
		assert.Equal(t, 4200, resp.TotalSales)
		assert.Equal(t, 4200, resp.TodayRevenue)
		assert.InDelta(t, 840.0, resp.AverageOrderValue, 0.001)
	})

	t.Run("popular menus ranked by count then revenue", func(t *testing.T) {
		require.Len(t, resp.PopularMenus, 2, "cancelled-only menus do not rank")
		assert.Equal(t, "Karaage Bento", resp.PopularMenus[0].MenuName)
		assert.Equal(t, 3, resp.PopularMenus[0].OrderCount)
		assert.Equal(t, 2600, resp.PopularMenus[0].TotalRevenue)
		assert.Equal(t, "Salmon Bento", resp.PopularMenus[1].MenuName)
		assert.Equal(t, 2, resp.PopularMenus[1].OrderCount)
	})

	t.Run("hourly histogram covers all 24 hours", func(t *testing.T) {
		require.Len(t, resp.HourlyOrders, 24)
		byHour := map[int]int{}
		for i, h := range resp.HourlyOrders {
			assert.Equal(t, i, h.Hour)
			byHour[h.Hour] = h.OrderCount
		}
		assert.Equal(t, 2, byHour[9])
		assert.Equal(t, 3, byHour[12], "cancelled orders still count as activity")
		assert.Equal(t, 1, byHour[18])
		assert.Equal(t, 0, byHour[3])
	})

	t.Run("yesterday comparison uses non-cancelled numbers", func(t *testing.T) {
		assert.Equal(t, 3, resp.YesterdayComparison.OrdersChange)
		assert.InDelta(t, 150.0, resp.YesterdayComparison.OrdersChangePercent, 0.001)
		assert.Equal(t, 2750, resp.YesterdayComparison.RevenueChange)
		assert.InDelta(t, 189.7, resp.YesterdayComparison.RevenueChangePercent, 0.001)
	})

	t.Run("customers cannot see dashboards", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/store/dashboard", accessToken(t, customer), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDashboardOnAQuietDay(t *testing.T) {
	r := setupAPI(t)
	store := createStore(t, "Bento Ichi")
	staff := createStaff(t, "staff1", store.ID, models.RoleNameStaff)

	w := doJSON(t, r, http.MethodGet, "/api/store/dashboard", accessToken(t, staff), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.DashboardResponse
	decodeBody(t, w, &resp)

	assert.Zero(t, resp.TotalOrders)
	assert.Zero(t, resp.TotalSales)
	assert.Zero(t, resp.AverageOrderValue, "average must not divide by zero")
	assert.InDelta(t, 0.0, resp.YesterdayComparison.OrdersChangePercent, 0.001)
	assert.InDelta(t, 0.0, resp.YesterdayComparison.RevenueChangePercent, 0.001)
	assert.NotNil(t, resp.PopularMenus)
	assert.Empty(t, resp.PopularMenus)
	assert.Len(t, resp.HourlyOrders, 24)
}

func TestDashboardComparisonAgainstEmptyYesterday(t *testing.T) {
	r := setupAPI(t)
	store := createStore(t, "Bento Ichi")
	staff := createStaff(t, "staff1", store.ID, models.RoleNameStaff)
	customer := createCustomer(t, "kenji")
	menu := createMenu(t, store.ID, "Karaage Bento", 650)

	createOrder(t, models.Order{
		UserID: customer.ID, MenuID: menu.ID, StoreID: store.ID,
		Quantity: 1, TotalPrice: 650, Status: models.StatusPending,
		OrderedAt: todayAt(10),
	})

	w := doJSON(t, r, http.MethodGet, "/api/store/dashboard", accessToken(t, staff), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.DashboardResponse
	decodeBody(t, w, &resp)

	assert.Equal(t, 1, resp.YesterdayComparison.OrdersChange)
	assert.InDelta(t, 100.0, resp.YesterdayComparison.OrdersChangePercent, 0.001)
	assert.Equal(t, 650, resp.YesterdayComparison.RevenueChange)
	assert.InDelta(t, 100.0, resp.YesterdayComparison.RevenueChangePercent, 0.001)
}

func TestWeeklySales(t *testing.T) {
	r := setupAPI(t)

	store := createStore(t, "Bento Ichi")
	rivalStore := createStore(t, "Bento Ni")
	staff := createStaff(t, "staff1", store.ID, models.RoleNameStaff)
	customer := createCustomer(t, "kenji")
	menu := createMenu(t, store.ID, "Karaage Bento", 650)
	rivalMenu := createMenu(t, rivalStore.ID, "Rival Bento", 700)

	place := func(storeID uint, menuID uint, total int, status models.OrderStatus, at time.Time) {
		createOrder(t, models.Order{
			UserID: customer.ID, MenuID: menuID, StoreID: storeID,
			Quantity: 1, TotalPrice: total, Status: status, OrderedAt: at,
		})
	}

	place(store.ID, menu.ID, 650, models.StatusCompleted, todayAt(12))
	place(store.ID, menu.ID, 800, models.StatusPending, todayAt(12).AddDate(0, 0, -3))
	place(store.ID, menu.ID, 1200, models.StatusCompleted, todayAt(12).AddDate(0, 0, -6))
	place(store.ID, menu.ID, 999, models.StatusCompleted, todayAt(12).AddDate(0, 0, -7))
	place(store.ID, menu.ID, 500, models.StatusCancelled, todayAt(12))
	place(rivalStore.ID, rivalMenu.ID, 700, models.StatusCompleted, todayAt(12))

	w := doJSON(t, r, http.MethodGet, "/api/store/dashboard/weekly-sales", accessToken(t, staff), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Labels []string `json:"labels"`
		Data   []int    `json:"data"`
	}
	decodeBody(t, w, &resp)

	require.Len(t, resp.Labels, 7)
	require.Len(t, resp.Data, 7)

	now := time.Now()
	assert.Equal(t, now.Format("01/02"), resp.Labels[6], "last slot is today")
	assert.Equal(t, now.AddDate(0, 0, -6).Format("01/02"), resp.Labels[0])

	assert.Equal(t, 650, resp.Data[6], "cancelled and foreign orders excluded")
	assert.Equal(t, 800, resp.Data[3])
	assert.Equal(t, 1200, resp.Data[0])
	assert.Equal(t, 0, resp.Data[1], "orders older than the window are dropped")
}
