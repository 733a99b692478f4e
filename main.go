package main

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/finance-server/api"
	"github.com/ledgerline/finance-server/internal/config"
	"github.com/ledgerline/finance-server/internal/logging"
	"github.com/ledgerline/finance-server/internal/operator"
	"github.com/ledgerline/finance-server/internal/service"
	"github.com/ledgerline/finance-server/internal/storage"
)

const settlementWorkers = 4

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-server starting")

	// Missing .env is fine, the environment may be set another way
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("godotenv.Load")
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	writeOperator := operator.NewOperatorDelegator(dbStorage, settlementWorkers)
	writeOperator.Start()
	defer writeOperator.Stop()

	svc := service.NewService(dbStorage, writeOperator, []byte(envConfig.JWTSecret), envConfig.TokenTTL)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:    logger,
			Port:      envConfig.HTTPPort,
			Service:   svc,
			JWTSecret: []byte(envConfig.JWTSecret),
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
