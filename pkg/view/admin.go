package view

type AdminOrderListItem struct {
	ID        string
	Status    string
	Total     string
	CreatedAt string
	Customer  string
	ItemCount int
}

type AdminOrdersPage struct {
	Items  []AdminOrderListItem
	Q      string
	Status string
}

type AdminProductRow struct {
	ID       int64
	Slug     string
	Title    string
	Brand    string
	Price    string
	Stock    int
	ImageURL string
}

type AdminProductsPage struct {
	Items []AdminProductRow
	Q     string
}

type AdminDashboard struct {
	TotalProducts  int
	TotalOrders    int
	ActiveProducts int
}
