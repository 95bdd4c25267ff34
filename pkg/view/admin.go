package view

// AdminProductRow is one moderatable product line in the console tables.
type AdminProductRow struct {
	Slug      string
	Name      string
	Brand     string
	ImageURL  string
	Status    string
	CreatedBy string
	CreatedAt string

	// Transient, keyed by slug on the console side.
	RejectOpen  bool
	RejectDraft string
	InFlight    bool
	RowError    string
}

// AdminOfferRow is one moderatable price offer line (Pending tab).
type AdminOfferRow struct {
	ID        int64
	Product   string
	Merchant  string
	Price     string
	Stock     string
	CreatedBy string
	UpdatedAt string

	RejectOpen  bool
	RejectDraft string
	InFlight    bool
	RowError    string
}

// AdminConsolePage feeds the moderation console template: one of three tabs,
// and on the Pending tab two independently paginated sections.
type AdminConsolePage struct {
	Tab          string // "pending" | "all" | "mine"
	PendingBadge int

	Search   string
	Status   string
	Ordering string

	// Page-level fetch failure. Row-level errors live on the rows.
	Banner string

	Products           []AdminProductRow
	ProductsPagination Pagination

	// Pending tab only.
	Offers           []AdminOfferRow
	OffersPagination Pagination
	OffersError      string
}
