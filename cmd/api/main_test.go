package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/config"
	"github.com/imrishuroy/novamart/internal/handlers"
	"github.com/imrishuroy/novamart/internal/idempotency"
	"github.com/imrishuroy/novamart/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := setupRouter(handlers.HandlerConfig{
		Sessions:    session.NewRegistry(session.Deps{Log: zerolog.Nop()}),
		Idempotency: idempotency.NewMemoryStore(time.Hour),
		Log:         zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, w.Body.String())
}

func TestBuildDeps_InProcessWithoutAWSSettings(t *testing.T) {
	sink, idemp, err := buildDeps(context.Background(), &config.Config{IdempotencyTTL: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, session.NopSink{}, sink)
	assert.IsType(t, &idempotency.MemoryStore{}, idemp)
}
