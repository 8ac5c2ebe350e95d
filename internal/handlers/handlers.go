// Package handlers exposes storefront sessions over HTTP with gin.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/idempotency"
	"github.com/imrishuroy/novamart/internal/session"
	"github.com/imrishuroy/novamart/internal/validation"
	"github.com/rs/zerolog"
)

// HandlerConfig groups dependencies for the storefront routes.
type HandlerConfig struct {
	Sessions    *session.Registry
	Idempotency idempotency.Store
	Log         zerolog.Logger
}

type api struct {
	sessions *session.Registry
	idemp    idempotency.Store
	v        *validatorv10.Validate
	log      zerolog.Logger
}

// RegisterRoutes registers every storefront route on r.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	a := &api{
		sessions: cfg.Sessions,
		idemp:    cfg.Idempotency,
		v:        validation.New(),
		log:      cfg.Log,
	}

	r.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"all":        catalog.All,
			"categories": catalog.Categories(),
		})
	})

	sessions := r.Group("/sessions")
	registerSessionRoutes(sessions, a)

	s := sessions.Group("/:id", a.loadSession)
	registerCatalogRoutes(s, a)
	registerCartRoutes(s, a)
	registerOrdersRoutes(s, a)
	registerAdminRoutes(s.Group("/admin"), a)
	registerAssistantRoutes(s.Group("/assistant"), a)
}

const sessionKey = "novamart.session"

// loadSession resolves :id once per request and aborts with 404 when unknown.
func (a *api) loadSession(c *gin.Context) {
	s, err := a.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		c.Abort()
		return
	}
	c.Set(sessionKey, s)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
