package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/cart"
	"github.com/imrishuroy/novamart/internal/validation"
)

func cartBody(lines []cart.Line) gin.H {
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{
		"items":    lines,
		"count":    cart.Count(lines),
		"subtotal": cart.Subtotal(lines).StringFixed(2),
	}
}

func registerCartRoutes(g *gin.RouterGroup, a *api) {
	g.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, cartBody(currentSession(c).Cart()))
	})

	g.POST("/cart/items", func(c *gin.Context) {
		var req validation.AddToCartRequest
		if err := validation.BindAndValidate(c, &req, a.v); err != nil {
			return
		}
		lines, err := currentSession(c).AddToCart(req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartBody(lines))
	})

	g.PATCH("/cart/items/:pid", func(c *gin.Context) {
		var req validation.ChangeQuantityRequest
		if err := validation.BindAndValidate(c, &req, a.v); err != nil {
			return
		}
		lines := currentSession(c).ChangeQuantity(c.Param("pid"), *req.Delta)
		c.JSON(http.StatusOK, cartBody(lines))
	})

	g.DELETE("/cart/items/:pid", func(c *gin.Context) {
		c.JSON(http.StatusOK, cartBody(currentSession(c).RemoveFromCart(c.Param("pid"))))
	})
}
