// README: Trip-booked events published to Kafka.
package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"freightdesk/internal/modules/fleet"
)

const EventTripBooked = "trip.booked"

type EventPublisher interface {
	PublishTripBooked(ctx context.Context, trip fleet.Trip) error
}

type TripBookedEvent struct {
	Type       string     `json:"type"`
	Trip       fleet.Trip `json:"trip"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// MessageWriter is the subset of *kafka.Writer used here.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishTripBooked keys messages by vehicle so one vehicle's bookings stay
// on one partition.
func (p *KafkaPublisher) PublishTripBooked(ctx context.Context, trip fleet.Trip) error {
	payload, err := json.Marshal(TripBookedEvent{
		Type:       EventTripBooked,
		Trip:       trip,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(trip.VehicleID),
		Value: payload,
	})
}
