package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/idempotency"
	"github.com/imrishuroy/novamart/internal/orders"
)

const idempotencyHeader = "Idempotency-Key"

// registerOrdersRoutes registers checkout and order history routes.
func registerOrdersRoutes(g *gin.RouterGroup, a *api) {
	g.POST("/checkout", func(c *gin.Context) {
		ctx := c.Request.Context()
		s := currentSession(c)

		// Without a key every call is a fresh checkout attempt.
		idempKey := c.GetHeader(idempotencyHeader)
		if idempKey == "" || a.idemp == nil {
			placeOrder(c, s.ID(), s.Checkout)
			return
		}

		key := idempotency.ScopedKey(s.ID(), idempKey)
		rec, created, err := a.idemp.Reserve(ctx, key)
		if err != nil {
			a.log.Error().Err(err).Str("idempotency_key", idempKey).Msg("idempotency reserve failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "idempotency_check_failed", "msg": err.Error()})
			return
		}
		if !created {
			switch rec.Status {
			case idempotency.StatusDone:
				o, err := s.Order(rec.OrderID)
				if err != nil {
					respondError(c, err)
					return
				}
				c.Header("Idempotent-Replayed", "true")
				c.JSON(http.StatusOK, o)
			case idempotency.StatusInProgress:
				c.JSON(http.StatusConflict, gin.H{"error": "request_in_progress", "msg": "checkout with this key is already running"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown_idempotency_status", "msg": rec.Status})
			}
			return
		}

		o, err := s.Checkout()
		if err != nil {
			// mark failed so the client can retry with the same key
			if ferr := a.idemp.Fail(ctx, key, err.Error()); ferr != nil {
				a.log.Warn().Err(ferr).Str("idempotency_key", idempKey).Msg("mark idempotency failed")
			}
			respondError(c, err)
			return
		}
		if err := a.idemp.Complete(ctx, key, o.ID); err != nil {
			a.log.Warn().Err(err).Str("idempotency_key", idempKey).Str("order_id", o.ID).Msg("mark idempotency done")
		}
		created201(c, s.ID(), o)
	})

	g.GET("/orders", func(c *gin.Context) {
		list := currentSession(c).Orders()
		c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
	})

	g.GET("/orders/:oid", func(c *gin.Context) {
		o, err := currentSession(c).Order(c.Param("oid"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	})
}

func placeOrder(c *gin.Context, sessionID string, checkout func() (orders.Order, error)) {
	o, err := checkout()
	if err != nil {
		respondError(c, err)
		return
	}
	created201(c, sessionID, o)
}

func created201(c *gin.Context, sessionID string, o orders.Order) {
	c.Header("Location", fmt.Sprintf("/sessions/%s/orders/%s", sessionID, o.ID))
	c.JSON(http.StatusCreated, o)
}
