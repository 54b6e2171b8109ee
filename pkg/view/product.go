package view

type ProductCard struct {
	Slug          string
	Title         string
	Category      string
	Brand         string
	Price         string
	CompareAt     string
	Stock         int
	FrontImageURL string
	BackImageURL  string
}

type ProductsPage struct {
	Products []ProductCard
	Search   string
}

type ProductDetailPage struct {
	Product     ProductCard
	Description string
	InStock     bool
}
