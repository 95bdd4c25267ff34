package backend

import (
	"context"
	"encoding/json"
	"strconv"
)

type Merchant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	LogoDisplay string `json:"logo_display"`
	Website     string `json:"website"`
}

// PriceOffer is a merchant's price+stock quote for a product, moderated
// independently from the product itself.
type PriceOffer struct {
	ID          int64       `json:"id"`
	Product     *Product    `json:"product"`
	Merchant    *Merchant   `json:"merchant"`
	Price       json.Number `json:"price"`
	Currency    string      `json:"currency"`
	StockStatus string      `json:"stock_status"`
	URL         string      `json:"url"`
	DateUpdated string      `json:"date_updated"`

	ApprovalStatus  string `json:"approval_status"`
	CreatedByEmail  string `json:"created_by_email"`
	RejectionReason string `json:"rejection_reason"`
}

func (o PriceOffer) ProductName() string {
	if o.Product == nil {
		return ""
	}
	return o.Product.Name
}

func (o PriceOffer) MerchantName() string {
	if o.Merchant == nil {
		return ""
	}
	return o.Merchant.Name
}

// PendingOffers lists price offers awaiting moderation. Requires a staff
// token.
func (c *Client) PendingOffers(ctx context.Context, token string, pageNum int) (Page[PriceOffer], error) {
	var page Page[PriceOffer]
	err := c.getJSON(ctx, "/offers/pending/", pageValues(pageNum), token, &page)
	return page, err
}

func (c *Client) ApproveOffer(ctx context.Context, token string, id int64) error {
	return c.postJSON(ctx, "/offers/"+strconv.FormatInt(id, 10)+"/approve/", nil, token, nil)
}

func (c *Client) RejectOffer(ctx context.Context, token string, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.postJSON(ctx, "/offers/"+strconv.FormatInt(id, 10)+"/reject/", body, token, nil)
}
