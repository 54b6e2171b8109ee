package view

type CartItem struct {
	ID        int64
	Slug      string
	Title     string
	ImageURL  string
	Qty       int
	UnitPrice string
	LineTotal string
}

type CartPage struct {
	Items     []CartItem
	Total     string
	Addresses []AddressItem
}
