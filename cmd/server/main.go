package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactform/backend/internal/config"
	"github.com/contactform/backend/internal/handler"
	"github.com/contactform/backend/internal/logging"
	"github.com/contactform/backend/internal/repository"
	"github.com/contactform/backend/internal/service"
)

// newServerHandler builds the middleware chain around api. Requests are not
// routed through http.ServeMux, whose path cleaning would answer "//hello"
// with a plain-text redirect instead of the API's JSON.
func newServerHandler(api http.Handler, rl *handler.RateLimiter, log *slog.Logger) http.Handler {
	return handler.RequestLogger(log)(handler.SecurityHeaders(handler.CORS(handler.LimitSubmissions(rl, api))))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	log := logging.Setup(cfg.Log.Level)

	repo, closeRepo, err := repository.Open(context.Background(), cfg.Store)
	if err != nil {
		logging.Fatal("failed to open contact store", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeRepo()

	api := handler.New(service.NewContactService(repo), log)

	rl := handler.NewRateLimiter(cfg.Server.RateLimitPerMinute, cfg.Server.TrustedProxies)
	defer rl.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newServerHandler(api, rl, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
