package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"brokerapi/src/handler"
	"brokerapi/src/orders"
	"brokerapi/src/portfolio"
	"brokerapi/src/repository"
)

// StartServer wires the repositories and services together and serves
// the API until SIGINT/SIGTERM.
func StartServer(port string) {
	userRepo := repository.NewUserRepository()
	instrumentRepo := repository.NewInstrumentRepository()
	marketDataRepo := repository.NewMarketDataRepository()
	positionRepo := repository.NewPositionRepository()
	orderRepo := repository.NewOrderRepository()

	cashSvc := portfolio.NewCashService(orderRepo)
	orderSvc := orders.NewService(
		orders.NewResolver(marketDataRepo),
		orders.NewValidator(userRepo, instrumentRepo, positionRepo, cashSvc),
		orderRepo,
	)
	portfolioSvc := portfolio.NewService(userRepo, positionRepo, instrumentRepo, marketDataRepo, cashSvc)

	r := chi.NewRouter()

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	r.Post("/orders", handler.CreateOrderHandler(orderSvc))
	r.Get("/users/{id}/portfolio", handler.GetPortfolioHandler(portfolioSvc))
	r.Get("/instruments", handler.SearchInstrumentsHandler(instrumentRepo))

	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
