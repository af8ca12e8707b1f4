package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/railbooking/api"
	"github.com/zvrva/railbooking/config"
	"github.com/zvrva/railbooking/internal/service/auth"
	"github.com/zvrva/railbooking/internal/service/booking"
	"github.com/zvrva/railbooking/internal/service/trains"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, authSvc auth.AuthUseCase, trainSvc trains.TrainUseCase, bookingSvc booking.BookingUseCase) error {
	router := NewRouter(cfg, authSvc, trainSvc, bookingSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine and route groups. Everything except
// registration and login sits behind the auth middleware; train creation
// additionally requires the admin API key.
func NewRouter(cfg *config.Config, authSvc auth.AuthUseCase, trainSvc trains.TrainUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	if cfg.HTTP.Mode != "" {
		gin.SetMode(cfg.HTTP.Mode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), api.RequestID())

	api.NewAuthHandler(authSvc).Register(router.Group("/auth"))

	authed := router.Group("/", api.Auth(authSvc))
	api.NewBookingHandler(bookingSvc).Register(authed.Group("/bookings"))
	api.NewTrainHandler(trainSvc).Register(authed.Group("/trains"), api.AdminKey(cfg.Admin.APIKey))

	return router
}
