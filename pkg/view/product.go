package view

type ProductCard struct {
	Name     string
	Slug     string
	Brand    string
	ImageURL string
	Category string
	Price    string // formatted lowest offer price, empty when no offer
}

type OfferRow struct {
	ID       int64
	Merchant string
	Price    string
	Stock    string
	URL      string
}

type ProductDetail struct {
	Name        string
	Slug        string
	Brand       string
	Description string
	ImageURL    string
	Category    string
	Offers      []OfferRow
	Similar     []ProductCard
}

type ProductsPage struct {
	Title      string
	Products   []ProductCard
	Search     string
	Category   string
	Ordering   string
	Categories []CategoryOption
	Pagination Pagination
}

type CategoryOption struct {
	Name string
	Slug string
}
