package main

import (
	"context"
	"encoding/json"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/novamart/internal/aws"
	"github.com/imrishuroy/novamart/internal/cart"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/config"
	"github.com/imrishuroy/novamart/internal/events"
	"github.com/imrishuroy/novamart/internal/logging"
	"github.com/imrishuroy/novamart/internal/orders"
)

// sampleEventBody returns an order.placed body for a one-item demo order.
func sampleEventBody() (string, error) {
	lines := cart.AddItem(nil, catalog.SeedProducts()[0])
	o, err := orders.NewFactory().Checkout(lines, nil)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(events.NewOrderPlaced("local-session", o))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func main() {
	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init aws clients")
	}
	p := NewProcessor(clients, cfg.OrdersTable, cfg.MetricsNamespace, logging.Component("worker"))

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			if testBody, err = sampleEventBody(); err != nil {
				log.Fatal().Err(err).Msg("failed to build sample event")
			}
		}
		event := lambdaevents.SQSEvent{
			Records: []lambdaevents.SQSMessage{{MessageId: "local-1", Body: testBody}},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			log.Fatal().Err(err).Msg("local handler error")
		}
		return
	}

	lambda.Start(p.Handle)
}
