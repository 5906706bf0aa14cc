package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/payment"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 5 * time.Second

type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Payments payment.PaymentUseCase
}

// Run serves the REST API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, services Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg.HTTP, log, services),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.HTTP.Address).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrapf(err, "listen %s", cfg.HTTP.Address)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	}
}

func NewRouter(cfg config.HTTPConfig, log logrus.FieldLogger, services Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), tracingMiddleware(), metricsMiddleware(), loggerMiddleware(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		doc := filepath.Join(cfg.SwaggerDir, "doc.json")
		ui := gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
		router.GET("/swagger/*any", func(c *gin.Context) {
			if c.Param("any") == "/doc.json" {
				c.File(doc)
				return
			}
			ui(c)
		})
	}

	group := router.Group("/api")
	api.NewFlightHandler(services.Flights).Register(group)
	api.NewBookingHandler(services.Bookings, services.Payments).Register(group)

	return router
}
