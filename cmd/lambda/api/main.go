package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"freshsilver-api/internal/config"
	"freshsilver-api/internal/handlers"
	"freshsilver-api/pkg/lambda"
	"freshsilver-api/pkg/server"
)

func handler(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	container, err := server.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return handlers.ErrorJSON(500, err.Error()).ToV2Response(), nil
	}

	req, err := lambda.FromV2Request(event)
	if err != nil {
		container.Logger.WithError(err).Warn("Failed to decode request")
		return handlers.ErrorJSON(400, handlers.MsgInvalidJSON).ToV2Response(), nil
	}

	return container.Dispatcher.Handle(ctx, req).ToV2Response(), nil
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Build the container during the cold start; a failure here is retried
	// by the first invocation
	if cfg, err := config.GetOptimizedConfig(); err != nil {
		logrus.WithError(err).Error("Failed to load configuration")
	} else if err := server.GetConnectionManager().Initialize(cfg); err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
	}

	awslambda.Start(handler)
}
