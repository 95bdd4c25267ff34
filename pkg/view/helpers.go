package view

import "strings"

// Money formats a decimal price string as the site displays it,
// e.g. "1299.00" MAD -> "1 299,00 DH".
func Money(amount, currency string) string {
	intPart, fracPart, ok := strings.Cut(amount, ".")
	if !ok {
		fracPart = "00"
	}
	if len(fracPart) == 1 {
		fracPart += "0"
	}
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	return b.String() + "," + fracPart + " " + currencySymbol(currency)
}

func currencySymbol(code string) string {
	switch code {
	case "", "MAD":
		return "DH"
	case "EUR":
		return "€"
	case "USD":
		return "$"
	default:
		return code
	}
}

// StockLabel maps the backend stock_status codes to display text.
func StockLabel(status string) string {
	switch status {
	case "in_stock":
		return "En stock"
	case "low_stock":
		return "Stock faible"
	case "out_of_stock":
		return "Rupture de stock"
	default:
		return status
	}
}

// StatusLabel maps approval_status codes to display text.
func StatusLabel(status string) string {
	switch status {
	case "pending":
		return "En attente"
	case "approved":
		return "Approuvé"
	case "rejected":
		return "Rejeté"
	default:
		return status
	}
}
