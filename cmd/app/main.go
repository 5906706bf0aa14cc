package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/flightdata"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/payment"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv(config.EnvConfigPath)
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	shutdownTracing, err := observability.SetupOTel(ctx, cfg.Telemetry)
	if err != nil {
		return errors.Wrap(err, "setup tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("tracer shutdown")
		}
	}()

	bookings, closeStore, err := newBookingRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	source, details := newFlightSources(cfg, log)
	var flightOpts []flights.FlightServiceOption
	if cfg.Redis.Addr != "" {
		flightOpts = append(flightOpts, flights.WithCache(cache.NewRedisCache(
			cfg.Redis,
			time.Duration(cfg.Flights.SearchCacheTTL)*time.Second,
			time.Duration(cfg.Flights.DetailsCacheTTL)*time.Second,
		)))
	}

	lock := &sync.Mutex{}
	bookingOpts := []booking.BookingServiceOption{booking.WithLock(lock)}
	paymentOpts := []payment.PaymentServiceOption{payment.WithLock(lock)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()

		if err := producer.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka unavailable, booking events will fail to publish")
		}

		events := kafka.NewBookingPublisher(producer, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic)
		bookingOpts = append(bookingOpts, booking.WithEvents(events))
		paymentOpts = append(paymentOpts, payment.WithEvents(events))
	}

	return bootstrap.Run(ctx, cfg, log, bootstrap.Services{
		Flights:  flights.NewFlightService(source, details, log, flightOpts...),
		Bookings: booking.NewBookingService(bookings, log, bookingOpts...),
		Payments: payment.NewPaymentService(bookings, log, paymentOpts...),
	})
}

func newBookingRepository(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repository.BookingRepository, func(), error) {
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.WithField("path", cfg.Storage.BookingsFile).Info("using file booking store")
		return repository.NewFileBookingRepository(cfg.Storage.BookingsFile, log), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect postgres")
	}
	repo := repository.NewBookingRepository(pool, log)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, errors.Wrap(err, "migrate bookings table")
	}
	log.Info("using postgres booking store")
	return repo, pool.Close, nil
}

// newFlightSources picks the search source and the details provider. The
// static dataset backs both unless external APIs are configured.
func newFlightSources(cfg *config.Config, log logrus.FieldLogger) (flightdata.Source, flightdata.DetailsProvider) {
	static := flightdata.LoadStaticSource(cfg.Flights.DatasetFile, log)

	var source flightdata.Source = static
	if cfg.Flights.Source == config.FlightSourceAviationstack {
		source = flightdata.NewAviationstackSource(cfg.Aviationstack)
	}

	var details flightdata.DetailsProvider = static
	if cfg.Amadeus.ClientID != "" && cfg.Amadeus.ClientSecret != "" {
		details = flightdata.NewAmadeusProvider(cfg.Amadeus)
	}
	return source, details
}
