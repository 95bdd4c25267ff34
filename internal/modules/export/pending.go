package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"primini.ma/app/internal/backend"
)

// Lister is the slice of the backend client the export needs.
type Lister interface {
	PendingProducts(ctx context.Context, page int) (backend.Page[backend.Product], error)
	PendingOffers(ctx context.Context, page int) (backend.Page[backend.PriceOffer], error)
}

const maxExportPages = 50

// PendingWorkbook walks every page of the pending queues and builds an .xlsx
// with one sheet per entity type, for offline review.
func PendingWorkbook(ctx context.Context, l Lister) (*excelize.File, error) {
	f := excelize.NewFile()

	const productSheet = "Produits en attente"
	f.SetSheetName(f.GetSheetName(0), productSheet)
	writeRow(f, productSheet, 1, []any{"Nom", "Marque", "Slug", "Créé par", "Créé le"})

	rowNum := 2
	for page := 1; page <= maxExportPages; page++ {
		res, err := l.PendingProducts(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("export pending products page %d: %w", page, err)
		}
		for _, p := range res.Results {
			writeRow(f, productSheet, rowNum, []any{p.Name, p.Brand, p.Slug, p.CreatedByEmail, p.CreatedAt})
			rowNum++
		}
		if !res.HasNext() {
			break
		}
	}

	const offerSheet = "Offres en attente"
	if _, err := f.NewSheet(offerSheet); err != nil {
		return nil, err
	}
	writeRow(f, offerSheet, 1, []any{"ID", "Produit", "Marchand", "Prix", "Devise", "Stock", "Créé par"})

	rowNum = 2
	for page := 1; page <= maxExportPages; page++ {
		res, err := l.PendingOffers(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("export pending offers page %d: %w", page, err)
		}
		for _, o := range res.Results {
			writeRow(f, offerSheet, rowNum, []any{
				strconv.FormatInt(o.ID, 10), o.ProductName(), o.MerchantName(),
				o.Price.String(), o.Currency, o.StockStatus, o.CreatedByEmail,
			})
			rowNum++
		}
		if !res.HasNext() {
			break
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return
	}
	_ = f.SetSheetRow(sheet, cell, &values)
}
