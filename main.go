package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carson-networks/voice-ledger/api"
	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/config"
	"github.com/carson-networks/voice-ledger/internal/executor"
	"github.com/carson-networks/voice-ledger/internal/logging"
	"github.com/carson-networks/voice-ledger/internal/operator"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logging.SetupLogging("info").WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithField("store", envConfig.Store).Info("voice-ledger starting")

	store, err := storage.New(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.New")
		return
	}
	defer store.Close()

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	var candidates []classifier.Candidate
	if envConfig.LLMAPIKey != "" {
		client := classifier.NewHTTPClient(envConfig.LLMTimeout)
		candidates = classifier.NewGeminiCandidates(client, envConfig.LLMBaseURL, envConfig.LLMAPIKey, envConfig.LLMModels)
	} else {
		logger.Warn("LLM_API_KEY not set, commands use the local normalizer only")
	}
	cls := classifier.NewClassifier(candidates, logger)

	sim := simulator.NewSimulator(cls, envConfig.DefaultMonthlyIncome)
	svc := service.NewService(store, delegator, sim, envConfig.DefaultMonthlyIncome, time.Now)
	exec := executor.NewExecutor(delegator, svc.Analytics, sim, logger)
	voiceAssistant := assistant.New(cls, svc.Analytics, exec, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:    logger,
		Port:      envConfig.HTTPPort,
		StoreKind: envConfig.Store,
		Storage:   store,
		Service:   svc,
		Assistant: voiceAssistant,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("voice-ledger stopped")
	}
}
