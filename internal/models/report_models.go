package models

// DashboardStats holds the headline figures.
type DashboardStats struct {
	TotalProducts   int   `json:"totalProducts"`
	StockValue      Money `json:"stockValue"`
	TotalUnits      int64 `json:"totalUnits"`
	LowStockCount   int   `json:"lowStockCount"`
	OutOfStockCount int   `json:"outOfStockCount"`
	TotalRevenue    Money `json:"totalRevenue"`
	TodayRevenue    Money `json:"todayRevenue"`
	TodayOrders     int   `json:"todayOrders"`
	PendingOrders   int   `json:"pendingOrders"`
}

// StatusCount is one bar of the order status histogram.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

// MonthlyRevenue is one calendar month bucket, Month formatted YYYY-MM.
type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue Money  `json:"revenue"`
	Orders  int    `json:"orders"`
}

// TopProduct is a best seller over delivered orders.
type TopProduct struct {
	ProductID    int64  `json:"productId"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	QuantitySold int64  `json:"quantitySold"`
	Revenue      Money  `json:"revenue"`
}

// DashboardCharts groups chart series.
type DashboardCharts struct {
	OrdersByStatus []StatusCount    `json:"ordersByStatus"`
	RevenueByMonth []MonthlyRevenue `json:"revenueByMonth"`
	TopProducts    []TopProduct     `json:"topProducts"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Stats            DashboardStats  `json:"stats"`
	Charts           DashboardCharts `json:"charts"`
	RecentOrders     []Order         `json:"recentOrders"`
	LowStockProducts []Stock         `json:"lowStockProducts"`
}
