package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/admin"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/imrishuroy/novamart/internal/validation"
)

func registerAdminRoutes(g *gin.RouterGroup, a *api) {
	// Fields missing from the body keep the draft defaults. The controller
	// validates, so a non-admin is refused before the draft is inspected.
	g.POST("/products", func(c *gin.Context) {
		d := admin.NewDraft()
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		p, err := currentSession(c).AddProduct(d)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	})

	g.DELETE("/products/:pid", func(c *gin.Context) {
		removed, err := currentSession(c).DeleteProduct(c.Param("pid"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !removed {
			respondError(c, catalog.ErrNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	})

	g.PUT("/orders/:oid/status", func(c *gin.Context) {
		var req validation.SetOrderStatusRequest
		if err := validation.BindAndValidate(c, &req, a.v); err != nil {
			return
		}
		status, err := orders.ParseStatus(req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		o, found, err := currentSession(c).SetOrderStatus(c.Param("oid"), status)
		if err != nil {
			respondError(c, err)
			return
		}
		if !found {
			respondError(c, orders.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	// Waits for the generated copy. A second request while one runs gets 409.
	g.POST("/descriptions", func(c *gin.Context) {
		var req validation.GenerateDescriptionRequest
		if err := validation.BindAndValidate(c, &req, a.v); err != nil {
			return
		}
		category, err := catalog.ParseCategory(req.Category)
		if err != nil {
			respondError(c, err)
			return
		}
		if category == catalog.All {
			category = catalog.CategoryElectronics
		}

		done, err := currentSession(c).GenerateDescription(c.Request.Context(), req.Name, category)
		if err != nil {
			respondError(c, err)
			return
		}
		select {
		case res := <-done:
			if res.Err != nil {
				respondError(c, res.Err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"name": req.Name, "category": category, "description": res.Text})
		case <-c.Request.Context().Done():
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request_cancelled", "msg": c.Request.Context().Err().Error()})
		}
	})
}
