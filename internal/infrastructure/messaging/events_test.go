package messaging

import (
	"context"
	"testing"
	"time"

	"clinic-intake/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntakeCreatedEvent(t *testing.T) {
	intake := &entity.PatientIntake{
		ID:            42,
		FirstName:     "Jane",
		LastName:      "Doe",
		DOB:           time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC),
		TherapistName: "Dr. Rivera",
	}

	event := NewIntakeCreatedEvent(intake)

	assert.Equal(t, EventIntakeCreated, event.EventType)
	assert.Equal(t, ServiceName, event.ServiceName)
	assert.Equal(t, int64(42), event.Data.IntakeID)
	assert.Equal(t, "1990-05-17", event.Data.DateOfBirth)
	assert.Equal(t, "Dr. Rivera", event.Data.TherapistName)

	_, err := uuid.Parse(event.ID())
	require.NoError(t, err)
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent(EventIntakeCreated)
	b := NewBaseEvent(EventIntakeCreated)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, time.UTC, a.Timestamp.Location())
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}

	assert.NoError(t, p.Publish(context.Background(), EventIntakeCreated, NewBaseEvent(EventIntakeCreated)))
	assert.NoError(t, p.Close())
}
