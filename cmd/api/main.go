package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/admin"
	"github.com/imrishuroy/novamart/internal/aws"
	"github.com/imrishuroy/novamart/internal/config"
	orderevents "github.com/imrishuroy/novamart/internal/events"
	"github.com/imrishuroy/novamart/internal/gemini"
	"github.com/imrishuroy/novamart/internal/handlers"
	"github.com/imrishuroy/novamart/internal/idempotency"
	"github.com/imrishuroy/novamart/internal/logging"
	"github.com/imrishuroy/novamart/internal/session"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(cfg.Log))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": cfg.Sessions.Len()})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

// buildDeps wires the AWS-backed collaborators when their settings are present
// and falls back to in-process ones otherwise.
func buildDeps(ctx context.Context, cfg *config.Config) (session.EventSink, idempotency.Store, error) {
	var sink session.EventSink = session.NopSink{}
	var idemp idempotency.Store = idempotency.NewMemoryStore(cfg.IdempotencyTTL)

	if cfg.QueueURL == "" && cfg.IdempotencyTable == "" {
		return sink, idemp, nil
	}

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cfg.QueueURL != "" {
		sink = orderevents.NewQueueSink(aws.NewPublisher(clients.SQS, cfg.QueueURL))
	}
	if cfg.IdempotencyTable != "" {
		idemp = idempotency.NewDynamoStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
	}
	return sink, idemp, nil
}

func main() {
	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	ai, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.AITimeout,
	}, logging.Component("gemini"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init gemini client")
	}
	if !cfg.AIEnabled() {
		log.Warn().Msg("no API key configured; descriptions and assistant replies use fallback text")
	}

	sink, idemp, err := buildDeps(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init aws clients")
	}

	registry := session.NewRegistry(session.Deps{
		Admin:        admin.NewController(ai, logging.Component("admin")),
		Recommender:  ai,
		Sink:         sink,
		AsyncTimeout: cfg.AsyncTimeout,
		Log:          logging.Component("session"),
	})

	r := setupRouter(handlers.HandlerConfig{
		Sessions:    registry,
		Idempotency: idemp,
		Log:         logging.Component("http"),
	})

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		log.Info().Str("addr", cfg.Addr()).Msg("running local server")
		if err := r.Run(cfg.Addr()); err != nil {
			log.Fatal().Err(err).Msg("failed to run local server")
		}
		return
	}

	// Session state is per process; the API Gateway route needs a single warm
	// instance (reserved concurrency 1) for sessions to survive across requests.
	log.Warn().Msg("lambda mode: sessions live in this instance's memory only")
	gin.SetMode(gin.ReleaseMode)
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
