package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/validation"
)

func registerAssistantRoutes(g *gin.RouterGroup, a *api) {
	g.GET("/messages", func(c *gin.Context) {
		s := currentSession(c)
		c.JSON(http.StatusOK, gin.H{
			"pending":  s.AssistantPending(),
			"messages": s.Transcript(),
		})
	})

	// The reply is produced in the background and lands in the transcript.
	// ?wait=true holds the request open until it arrives.
	g.POST("/messages", func(c *gin.Context) {
		var req validation.AskRequest
		if err := validation.BindAndValidate(c, &req, a.v); err != nil {
			return
		}

		// the backend call must outlive this request
		ctx := context.WithoutCancel(c.Request.Context())
		done, err := currentSession(c).Ask(ctx, req.Text)
		if err != nil {
			respondError(c, err)
			return
		}

		if c.Query("wait") != "true" {
			c.JSON(http.StatusAccepted, gin.H{"pending": true})
			return
		}
		select {
		case reply := <-done:
			c.JSON(http.StatusOK, reply)
		case <-c.Request.Context().Done():
			c.JSON(http.StatusAccepted, gin.H{"pending": true})
		}
	})
}
