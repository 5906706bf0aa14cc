package audit

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "booking_audit"

type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type Record struct {
	ID             string    `bson:"_id"`
	Type           string    `bson:"type"`
	UserID         string    `bson:"user_id"`
	FlightID       string    `bson:"flight_id"`
	PassengerEmail string    `bson:"passenger_email"`
	Status         string    `bson:"status"`
	OccurredAt     time.Time `bson:"occurred_at"`
	RecordedAt     time.Time `bson:"recorded_at"`
}

// Trail writes booking events to MongoDB, keyed by event id.
type Trail struct {
	coll inserter
	log  logrus.FieldLogger
}

func NewTrail(db *mongo.Database, log logrus.FieldLogger) *Trail {
	return newTrail(db.Collection(CollectionName), log)
}

func newTrail(coll inserter, log logrus.FieldLogger) *Trail {
	return &Trail{coll: coll, log: log.WithField("component", "audit")}
}

func (t *Trail) Record(ctx context.Context, event kafka.BookingEvent) error {
	record := Record{
		ID:             event.EventID,
		Type:           event.Type,
		UserID:         event.UserID,
		FlightID:       event.FlightID,
		PassengerEmail: event.PassengerEmail,
		Status:         event.Status,
		OccurredAt:     event.OccurredAt,
		RecordedAt:     time.Now().UTC(),
	}
	if _, err := t.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			t.log.WithField("event_id", event.EventID).Debug("event already audited")
			return nil
		}
		t.log.WithError(err).WithField("event_id", event.EventID).Error("failed to insert audit record")
		return err
	}
	return nil
}
