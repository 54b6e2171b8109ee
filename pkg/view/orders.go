package view

type OrderItem struct {
	ProductTitle string
	Qty          int
	UnitPrice    string
	LineTotal    string
}

type OrderListItem struct {
	ID         string
	Number     string
	Status     string
	CreatedAt  string
	Total      string
	ItemCount  int
	Items      []OrderItem
	CanCancel  bool
	Cancelling bool
}

type OrdersPage struct {
	Items      []OrderListItem
	Loading    bool
	Refreshing bool
	ErrorMsg   string
	Empty      bool // loaded with zero orders and no error

	// filter/sort state echoed back into the form
	FilterStatus string
	Search       string
	SortBy       string
	Statuses     []string
	SortOptions  []SortOption
}

type SortOption struct {
	Value string
	Label string
}

type CancelConfirmPage struct {
	Order OrderListItem
}
