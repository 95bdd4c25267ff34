package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/http/middleware"
	"primini.ma/app/internal/http/render"
	"primini.ma/app/internal/shared/apperr"
	"primini.ma/app/pkg/view"
)

// ProductsHandler serves the public catalog: listing with filters and the
// product detail page with its price offers.
type ProductsHandler struct {
	Client *backend.Client
}

func NewProductsHandler(client *backend.Client) *ProductsHandler {
	return &ProductsHandler{Client: client}
}

func (h *ProductsHandler) List(c *gin.Context) {
	params := backend.ListParams{
		Page:     parseInt(c.Query("page"), 1),
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: strings.TrimSpace(c.Query("ordering")),
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
		PriceMin: strings.TrimSpace(c.Query("price_min")),
		PriceMax: strings.TrimSpace(c.Query("price_max")),
	}

	ctx := c.Request.Context()
	page, err := h.Client.ListProducts(ctx, params)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// Category strip is decoration; ignore its failure.
	cats, _ := h.Client.Categories(ctx)

	vm := view.ProductsPage{
		Title:      "Comparez les prix au Maroc",
		Search:     params.Search,
		Category:   params.Category,
		Ordering:   params.Ordering,
		Products:   h.mapCards(page.Results),
		Categories: mapCategories(cats),
		Pagination: view.Pagination{
			Page:       page.CurrentPage,
			TotalPages: page.TotalPages,
			Count:      page.Count,
			Prev:       page.Prev(),
			Next:       page.Next(),
		},
	}
	render.HTML(c, http.StatusOK, "products.tmpl", vm.Title, vm)
}

func (h *ProductsHandler) Show(c *gin.Context) {
	slug := c.Param("slug")

	d, err := h.Client.GetProduct(c.Request.Context(), slug)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			render.ErrorPage(c, http.StatusNotFound, "Produit introuvable.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	vm := view.ProductDetail{
		Name:        d.Name,
		Slug:        d.Slug,
		Brand:       d.Brand,
		Description: d.Description,
		ImageURL:    d.ImageURL(h.Client.BaseURL()),
		Category:    d.CategoryName(),
		Offers:      h.mapOffers(d.Offers),
		Similar:     h.mapCards(d.SimilarProducts),
	}
	render.HTML(c, http.StatusOK, "product_detail.tmpl", d.Name, vm)
}

func (h *ProductsHandler) mapCards(items []backend.Product) []view.ProductCard {
	out := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		price := ""
		if lp := p.LowestPriceString(); lp != "" {
			price = view.Money(lp, "MAD")
		}
		out = append(out, view.ProductCard{
			Name:     p.Name,
			Slug:     p.Slug,
			Brand:    p.Brand,
			ImageURL: p.ImageURL(h.Client.BaseURL()),
			Category: p.CategoryName(),
			Price:    price,
		})
	}
	return out
}

func (h *ProductsHandler) mapOffers(items []backend.PriceOffer) []view.OfferRow {
	out := make([]view.OfferRow, 0, len(items))
	for _, o := range items {
		// Only approved offers belong on the public page.
		if o.ApprovalStatus != "" && o.ApprovalStatus != "approved" {
			continue
		}
		out = append(out, view.OfferRow{
			ID:       o.ID,
			Merchant: o.MerchantName(),
			Price:    view.Money(o.Price.String(), o.Currency),
			Stock:    view.StockLabel(o.StockStatus),
			URL:      o.URL,
		})
	}
	return out
}

func mapCategories(cats []backend.Category) []view.CategoryOption {
	out := make([]view.CategoryOption, 0, len(cats))
	for _, cat := range cats {
		out = append(out, view.CategoryOption{Name: cat.Name, Slug: cat.Slug})
	}
	return out
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
