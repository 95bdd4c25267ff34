package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

type Category struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Icon     string     `json:"icon"`
	Parent   *int64     `json:"parent"`
	Children []Category `json:"children"`
}

// Product is the backend's product record as the list endpoints serialize
// it. The frontend never mutates a copy; every change goes through a
// moderation call followed by a re-fetch.
type Product struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	Brand        string       `json:"brand"`
	Image        string       `json:"image"`
	ImageFile    string       `json:"image_file"`
	ImageDisplay string       `json:"image_display"`
	Category     *Category    `json:"category"`
	Subcategory  *Category    `json:"subcategory"`
	LowestPrice  *json.Number `json:"lowest_price"`
	Tags         []string     `json:"tags"`

	ApprovalStatus  string `json:"approval_status"`
	CreatedByEmail  string `json:"created_by_email"`
	CreatedAt       string `json:"created_at"`
	RejectionReason string `json:"rejection_reason"`
}

// ProductDetail is the retrieve shape: the product plus its offers and a
// similar-products strip.
type ProductDetail struct {
	Product
	Offers          []PriceOffer `json:"offers"`
	SimilarProducts []Product    `json:"similar_products"`
}

// ImageURL resolves the displayable image for a product: the explicit
// display URL when the backend computed one, otherwise whichever of the raw
// fields is populated, joined onto the backend origin when relative.
func (p Product) ImageURL(base string) string {
	if p.ImageDisplay != "" {
		return resolveMediaURL(p.ImageDisplay, base)
	}
	if p.ImageFile != "" {
		return resolveMediaURL(p.ImageFile, base)
	}
	return resolveMediaURL(p.Image, base)
}

func resolveMediaURL(raw, base string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(raw, "/")
}

// ListParams are the query parameters of GET /api/products/.
type ListParams struct {
	Page     int
	Search   string
	Status   string
	Ordering string
	Category string
	Brand    string
	PriceMin string
	PriceMax string
}

// Values encodes the parameters, omitting every unset field rather than
// sending empty strings. Page is always sent; the backend treats it as
// 1 when missing anyway, but an explicit page keeps URLs shareable.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Brand != "" {
		v.Set("brand", p.Brand)
	}
	if p.PriceMin != "" {
		v.Set("price_min", p.PriceMin)
	}
	if p.PriceMax != "" {
		v.Set("price_max", p.PriceMax)
	}
	return v
}

// ListProducts lists the public catalog.
func (c *Client) ListProducts(ctx context.Context, p ListParams) (Page[Product], error) {
	var page Page[Product]
	err := c.getJSON(ctx, "/products/", p.Values(), "", &page)
	return page, err
}

// PendingProducts lists products awaiting moderation. Requires a staff token.
func (c *Client) PendingProducts(ctx context.Context, token string, pageNum int) (Page[Product], error) {
	var page Page[Product]
	err := c.getJSON(ctx, "/products/pending/", pageValues(pageNum), token, &page)
	return page, err
}

// MyProducts lists products created by the token's user, optionally filtered
// by approval status.
func (c *Client) MyProducts(ctx context.Context, token string, p ListParams) (Page[Product], error) {
	var page Page[Product]
	err := c.getJSON(ctx, "/products/mine/", p.Values(), token, &page)
	return page, err
}

func (c *Client) GetProduct(ctx context.Context, slug string) (ProductDetail, error) {
	var d ProductDetail
	err := c.getJSON(ctx, "/products/"+url.PathEscape(slug)+"/", nil, "", &d)
	return d, err
}

// ApproveProduct transitions a product to approved. 200 means done; the
// caller re-fetches to observe the new state.
func (c *Client) ApproveProduct(ctx context.Context, token, slug string) error {
	return c.postJSON(ctx, "/products/"+url.PathEscape(slug)+"/approve/", nil, token, nil)
}

// RejectProduct transitions a product to rejected with a reason. The reason
// is validated by the caller before any network traffic.
func (c *Client) RejectProduct(ctx context.Context, token, slug, reason string) error {
	body := map[string]string{"reason": reason}
	return c.postJSON(ctx, "/products/"+url.PathEscape(slug)+"/reject/", body, token, nil)
}

// Categories fetches the category tree (first page covers the whole tree in
// practice, top-level categories are few).
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var page Page[Category]
	if err := c.getJSON(ctx, "/categories/", nil, "", &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func pageValues(pageNum int) url.Values {
	if pageNum < 1 {
		pageNum = 1
	}
	return url.Values{"page": []string{strconv.Itoa(pageNum)}}
}

// LowestPriceString renders the annotated lowest price, "" when the product
// has no approved offer yet.
func (p Product) LowestPriceString() string {
	if p.LowestPrice == nil {
		return ""
	}
	return p.LowestPrice.String()
}

// CategoryName is a convenience for templates.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
