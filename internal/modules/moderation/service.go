package moderation

import (
	"context"
	"fmt"
	"strings"

	"primini.ma/app/internal/shared/apperr"
)

type Kind string

const (
	KindProduct Kind = "product"
	KindOffer   Kind = "offer"
)

// Target identifies one moderatable entity: products by slug, offers by id.
type Target struct {
	Kind    Kind
	Slug    string
	OfferID int64
}

func ProductTarget(slug string) Target { return Target{Kind: KindProduct, Slug: slug} }
func OfferTarget(id int64) Target      { return Target{Kind: KindOffer, OfferID: id} }

// Key is the stable identity used for per-row transient state. Rows are
// keyed by entity identity, never by list index.
func (t Target) Key() string {
	if t.Kind == KindOffer {
		return fmt.Sprintf("offer:%d", t.OfferID)
	}
	return "product:" + t.Slug
}

// Gateway is the token-bound slice of the backend client the service needs.
type Gateway interface {
	ApproveProduct(ctx context.Context, slug string) error
	RejectProduct(ctx context.Context, slug, reason string) error
	ApproveOffer(ctx context.Context, id int64) error
	RejectOffer(ctx context.Context, id int64, reason string) error
}

// Service performs the four moderation actions. Rejections are validated
// locally: a blank reason never reaches the network.
type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) Approve(ctx context.Context, t Target) error {
	if t.Kind == KindOffer {
		return s.gw.ApproveOffer(ctx, t.OfferID)
	}
	return s.gw.ApproveProduct(ctx, t.Slug)
}

func (s *Service) Reject(ctx context.Context, t Target, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperr.ValidationErr("Le motif de rejet est obligatoire.", map[string]string{
			"reason": "Indiquez un motif de rejet.",
		})
	}
	if t.Kind == KindOffer {
		return s.gw.RejectOffer(ctx, t.OfferID, reason)
	}
	return s.gw.RejectProduct(ctx, t.Slug, reason)
}
