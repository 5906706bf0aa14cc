package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/audit"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
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
		log.WithError(err).Fatal("worker stopped")
	}
	log.Info("worker shut down")
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		return errors.New("kafka brokers and notifications_topic are required")
	}

	var trail *audit.Trail
	if cfg.Mongo.URI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return errors.Wrap(err, "connect mongo")
		}
		defer client.Disconnect(context.Background())
		trail = audit.NewTrail(client.Database(cfg.Mongo.Database), log)
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := consumer.ConsumeEvents(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
			if err := sender.Send(ctx, event); err != nil {
				log.WithError(err).WithField("event_id", event.EventID).Warn("notification failed")
			}
			if trail != nil {
				if err := trail.Record(ctx, event); err != nil {
					log.WithError(err).WithField("event_id", event.EventID).Warn("audit failed")
				}
			}
			return nil
		})
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "consume notifications")
	})

	log.WithField("topic", cfg.Kafka.NotificationsTopic).Info("worker started")
	return g.Wait()
}
