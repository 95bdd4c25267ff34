package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primini.ma/app/internal/shared/apperr"
)

type gatewayCall struct {
	op     string
	slug   string
	id     int64
	reason string
}

type fakeGateway struct {
	calls []gatewayCall
	err   error
}

func (g *fakeGateway) ApproveProduct(ctx context.Context, slug string) error {
	g.calls = append(g.calls, gatewayCall{op: "approve_product", slug: slug})
	return g.err
}

func (g *fakeGateway) RejectProduct(ctx context.Context, slug, reason string) error {
	g.calls = append(g.calls, gatewayCall{op: "reject_product", slug: slug, reason: reason})
	return g.err
}

func (g *fakeGateway) ApproveOffer(ctx context.Context, id int64) error {
	g.calls = append(g.calls, gatewayCall{op: "approve_offer", id: id})
	return g.err
}

func (g *fakeGateway) RejectOffer(ctx context.Context, id int64, reason string) error {
	g.calls = append(g.calls, gatewayCall{op: "reject_offer", id: id, reason: reason})
	return g.err
}

func TestApprove_RoutesByKind(t *testing.T) {
	g := &fakeGateway{}
	s := NewService(g)

	require.NoError(t, s.Approve(context.Background(), ProductTarget("iphone-15")))
	require.NoError(t, s.Approve(context.Background(), OfferTarget(42)))

	require.Len(t, g.calls, 2)
	assert.Equal(t, gatewayCall{op: "approve_product", slug: "iphone-15"}, g.calls[0])
	assert.Equal(t, gatewayCall{op: "approve_offer", id: 42}, g.calls[1])
}

func TestReject_BlankReason_NeverReachesGateway(t *testing.T) {
	g := &fakeGateway{}
	s := NewService(g)

	for _, reason := range []string{"", "   ", "\t\n"} {
		err := s.Reject(context.Background(), ProductTarget("x"), reason)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.Validation))
	}
	assert.Empty(t, g.calls)
}

func TestReject_TrimsReason(t *testing.T) {
	g := &fakeGateway{}
	s := NewService(g)

	require.NoError(t, s.Reject(context.Background(), OfferTarget(7), "  prix erroné  "))

	require.Len(t, g.calls, 1)
	assert.Equal(t, gatewayCall{op: "reject_offer", id: 7, reason: "prix erroné"}, g.calls[0])
}

func TestTarget_Key(t *testing.T) {
	assert.Equal(t, "product:iphone-15", ProductTarget("iphone-15").Key())
	assert.Equal(t, "offer:42", OfferTarget(42).Key())
}
