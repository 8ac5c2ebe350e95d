package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/catalog"
)

func registerCatalogRoutes(g *gin.RouterGroup, a *api) {
	g.GET("/products", func(c *gin.Context) {
		category, err := catalog.ParseCategory(c.Query("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		products := currentSession(c).Products(category, c.Query("q"))
		c.JSON(http.StatusOK, gin.H{
			"category": category,
			"count":    len(products),
			"products": products,
		})
	})

	g.GET("/products/:pid", func(c *gin.Context) {
		p, err := currentSession(c).Product(c.Param("pid"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})
}
