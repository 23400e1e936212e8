package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	analyticshandler "github.com/carson-networks/voice-ledger/internal/handlers/v1/analytics"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/loan"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/profile"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/voice"
	"github.com/carson-networks/voice-ledger/internal/logging"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/storage"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	StoreKind string
	Storage   *storage.Storage
	Service   *service.Service
	Assistant *assistant.Assistant
}

// Routes builds the full handler tree: /status plus every huma operation.
func (r *Rest) Routes() http.Handler {
	mux := http.NewServeMux()

	var db status.Pinger
	if r.Storage != nil && r.Storage.DB != nil {
		db = r.Storage.DB
	}
	statusHandler := status.NewHandler(r.StoreKind, db)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Voice Ledger", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)
	loan.NewHandler(r.Service.Loan).Register(api)
	profile.NewHandler(r.Service.Profile).Register(api)
	analyticshandler.NewHandler(r.Service.Analytics).Register(api)
	voice.NewCommandHandler(r.Assistant).Register(api)
	voice.NewSessionHandler(r.Assistant).Register(api)

	return otelhttp.NewHandler(mux, "voice-ledger")
}

// Serve blocks until ctx is cancelled or the listener fails.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(60) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
	return nil
}
