package kafka

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type MessageProducer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// BookingPublisher sends lifecycle events to the booking topic and, when
// set, mirrors them to the notifications topic.
type BookingPublisher struct {
	producer           MessageProducer
	bookingTopic       string
	notificationsTopic string
}

func NewBookingPublisher(producer MessageProducer, bookingTopic, notificationsTopic string) *BookingPublisher {
	return &BookingPublisher{
		producer:           producer,
		bookingTopic:       bookingTopic,
		notificationsTopic: notificationsTopic,
	}
}

func (p *BookingPublisher) PublishBooking(ctx context.Context, eventType string, booking domain.Booking) error {
	if p.producer == nil || p.bookingTopic == "" {
		return nil
	}
	event := NewBookingEvent(eventType, booking)
	if err := p.producer.Publish(ctx, p.bookingTopic, event.Key(), event); err != nil {
		return err
	}
	if p.notificationsTopic != "" {
		return p.producer.Publish(ctx, p.notificationsTopic, event.Key(), event)
	}
	return nil
}
