package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	authmw "github.com/ledgerline/finance-server/internal/auth"
	authhandlers "github.com/ledgerline/finance-server/internal/handlers/v1/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/debt"
	"github.com/ledgerline/finance-server/internal/handlers/v1/status"
	"github.com/ledgerline/finance-server/internal/handlers/v1/transaction"
	"github.com/ledgerline/finance-server/internal/logging"
	"github.com/ledgerline/finance-server/internal/service"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Service   *service.Service
	JWTSecret []byte
}

// unauthenticatedPaths pass through the auth middleware without a token.
var unauthenticatedPaths = []string{
	"/v1/auth/register",
	"/v1/auth/login",
}

// NewAPI builds the huma API with all middleware and v1 endpoints registered.
// It is split out of Serve so tests can mount the same surface on a test
// server.
func (r *Rest) NewAPI(mux *http.ServeMux) huma.API {
	humaAPI := humago.New(mux, huma.DefaultConfig("Finance Server", "1.0.0"))

	humaAPI.UseMiddleware(logging.Middleware(r.Logger))
	humaAPI.UseMiddleware(authmw.Middleware(humaAPI, r.JWTSecret, unauthenticatedPaths))

	authhandlers.NewRegisterHandler(r.Service.Auth).Register(humaAPI)
	authhandlers.NewLoginHandler(r.Service.Auth).Register(humaAPI)

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewTransactionStatsHandler(r.Service.Transaction).Register(humaAPI)

	debt.NewCreateDebtHandler(r.Service.Debt).Register(humaAPI)
	debt.NewListDebtsHandler(r.Service.Debt).Register(humaAPI)
	debt.NewUpdateDebtHandler(r.Service.Debt).Register(humaAPI)
	debt.NewDeleteDebtHandler(r.Service.Debt).Register(humaAPI)
	debt.NewSettleDebtHandler(r.Service.Debt).Register(humaAPI)
	debt.NewDebtStatsHandler(r.Service.Debt).Register(humaAPI)

	return humaAPI
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()
	r.NewAPI(mux)

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
