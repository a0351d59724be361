package domain

// DashboardStats is the payload of GET /dashboard/stats/.
type DashboardStats struct {
	TotalCustomers int     `json:"total_customers"`
	TotalProducts  int     `json:"total_products"`
	TotalOrders    int     `json:"total_orders"`
	PendingOrders  int     `json:"pending_orders"`
	RecentOrders   []Order `json:"recent_orders,omitempty"`
}
