package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primini.ma/app/internal/backend"
)

type fakeLister struct {
	productPages []backend.Page[backend.Product]
	offerPages   []backend.Page[backend.PriceOffer]
}

func (l *fakeLister) PendingProducts(ctx context.Context, page int) (backend.Page[backend.Product], error) {
	return l.productPages[page-1], nil
}

func (l *fakeLister) PendingOffers(ctx context.Context, page int) (backend.Page[backend.PriceOffer], error) {
	return l.offerPages[page-1], nil
}

func twoPages() *fakeLister {
	next := 2
	return &fakeLister{
		productPages: []backend.Page[backend.Product]{
			{
				Count: 3, TotalPages: 2, CurrentPage: 1, NextPage: &next,
				Results: []backend.Product{
					{Name: "iPhone 15", Brand: "Apple", Slug: "iphone-15", CreatedByEmail: "v@e.ma"},
					{Name: "Galaxy S24", Brand: "Samsung", Slug: "galaxy-s24", CreatedByEmail: "v@e.ma"},
				},
			},
			{
				Count: 3, TotalPages: 2, CurrentPage: 2,
				Results: []backend.Product{
					{Name: "Pixel 9", Brand: "Google", Slug: "pixel-9", CreatedByEmail: "w@e.ma"},
				},
			},
		},
		offerPages: []backend.Page[backend.PriceOffer]{
			{
				Count: 1, TotalPages: 1, CurrentPage: 1,
				Results: []backend.PriceOffer{
					{ID: 7, Price: "999.00", Currency: "MAD", StockStatus: "in_stock", CreatedByEmail: "m@e.ma"},
				},
			},
		},
	}
}

func TestPendingWorkbook_WalksAllPages(t *testing.T) {
	f, err := PendingWorkbook(context.Background(), twoPages())
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Produits en attente")
	assert.Contains(t, sheets, "Offres en attente")

	// Header then one row per product across both pages.
	name, err := f.GetCellValue("Produits en attente", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Nom", name)

	first, _ := f.GetCellValue("Produits en attente", "A2")
	assert.Equal(t, "iPhone 15", first)
	third, _ := f.GetCellValue("Produits en attente", "A4")
	assert.Equal(t, "Pixel 9", third)

	offerID, _ := f.GetCellValue("Offres en attente", "A2")
	assert.Equal(t, "7", offerID)
	price, _ := f.GetCellValue("Offres en attente", "D2")
	assert.Equal(t, "999.00", price)
}

func TestPendingWorkbook_EmptyQueues(t *testing.T) {
	l := &fakeLister{
		productPages: []backend.Page[backend.Product]{{Count: 0, TotalPages: 1, CurrentPage: 1}},
		offerPages:   []backend.Page[backend.PriceOffer]{{Count: 0, TotalPages: 1, CurrentPage: 1}},
	}
	f, err := PendingWorkbook(context.Background(), l)
	require.NoError(t, err)
	defer f.Close()

	header, _ := f.GetCellValue("Produits en attente", "A1")
	assert.Equal(t, "Nom", header)
	empty, _ := f.GetCellValue("Produits en attente", "A2")
	assert.Empty(t, empty)
}
