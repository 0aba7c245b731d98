package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/contactform/backend/internal/config"
	"github.com/contactform/backend/internal/handler"
	"github.com/contactform/backend/internal/logging"
	"github.com/contactform/backend/internal/repository"
	"github.com/contactform/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	log := logging.Setup(cfg.Log.Level, "function", os.Getenv("AWS_LAMBDA_FUNCTION_NAME"))

	// The store client is built on the first invocation and reused by every
	// later one in this execution environment. It is released on SIGTERM.
	repo := repository.NewLazyContactRepository(func(ctx context.Context) (repository.ContactRepository, func(), error) {
		return repository.Open(ctx, cfg.Store)
	})

	h := handler.New(service.NewContactService(repo), log)
	log.Info("lambda starting", "store", cfg.Store.Driver)
	lambda.StartWithOptions(h.HandleAPIGateway, lambda.WithEnableSIGTERM(repo.Close))
}
