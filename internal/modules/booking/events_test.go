package booking

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/modules/fleet"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher_PublishTripBooked(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)

	trip := fleet.Trip{ID: "abcd1234", VehicleID: "vuc-01", DriverID: "mot-01", StartAt: day1, EndAt: day1.Add(day)}
	require.NoError(t, p.PublishTripBooked(context.Background(), trip))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "vuc-01", string(w.msgs[0].Key))

	var evt TripBookedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &evt))
	assert.Equal(t, EventTripBooked, evt.Type)
	assert.Equal(t, trip.ID, evt.Trip.ID)
	assert.True(t, evt.Trip.StartAt.Equal(day1))
}
