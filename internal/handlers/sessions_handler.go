package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/imrishuroy/novamart/internal/session"
	"github.com/imrishuroy/novamart/internal/validation"
)

func registerSessionRoutes(g *gin.RouterGroup, a *api) {
	// An empty body starts a session for the demo admin user. A body describes
	// a new user with its own id; unset fields fall back to the demo values.
	g.POST("", func(c *gin.Context) {
		u := orders.DefaultUser()
		if c.Request.ContentLength != 0 {
			var req validation.CreateSessionRequest
			if err := validation.BindAndValidate(c, &req, a.v); err != nil {
				return
			}
			u.ID = "u-" + uuid.NewString()
			if req.Name != "" {
				u.Name = req.Name
			}
			if req.Email != "" {
				u.Email = req.Email
			}
			if req.IsAdmin != nil {
				u.IsAdmin = *req.IsAdmin
			}
		}

		s := a.sessions.Create(&u)
		c.Header("Location", "/sessions/"+s.ID())
		c.JSON(http.StatusCreated, s.Snapshot())
	})

	g.GET("/:id", a.loadSession, func(c *gin.Context) {
		c.JSON(http.StatusOK, currentSession(c).Snapshot())
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if !a.sessions.Delete(c.Param("id")) {
			respondError(c, session.ErrNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	})

	g.PUT("/:id/view", a.loadSession, func(c *gin.Context) {
		var req validation.SetViewRequest
		if err := validation.BindAndValidate(c, &req, a.v); err != nil {
			return
		}
		s := currentSession(c)
		if err := s.SetView(session.View(req.View)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	})
}
