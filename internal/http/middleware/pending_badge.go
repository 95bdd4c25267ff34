package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"primini.ma/app/internal/backend"
)

const ctxKeyPendingBadge = "pending_badge"

// PendingBadge resolves the moderation badge shown in the header for staff
// users: pending products + pending offers. Strictly best effort; a failure
// leaves the badge at zero and never delays or fails the page.
func PendingBadge(client *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok || !s.IsStaff || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		authed := client.WithToken(s.Token)

		var (
			wg       sync.WaitGroup
			products backend.Page[backend.Product]
			offers   backend.Page[backend.PriceOffer]
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			products, _ = authed.PendingProducts(ctx, 1)
		}()
		go func() {
			defer wg.Done()
			offers, _ = authed.PendingOffers(ctx, 1)
		}()
		wg.Wait()

		c.Set(ctxKeyPendingBadge, products.Count+offers.Count)
		c.Next()
	}
}

func GetPendingBadge(c *gin.Context) int {
	v, ok := c.Get(ctxKeyPendingBadge)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
