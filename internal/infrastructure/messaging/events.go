package messaging

import (
	"time"

	"clinic-intake/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	ServiceName = "clinic-intake"

	EventIntakeCreated = "patient.intake.created"
)

type Event interface {
	ID() string
}

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

func (e BaseEvent) ID() string {
	return e.EventID
}

func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
	}
}

type IntakeCreatedEvent struct {
	BaseEvent
	Data IntakeCreatedData `json:"data"`
}

type IntakeCreatedData struct {
	IntakeID      int64     `json:"intake_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   string    `json:"date_of_birth"`
	TherapistName string    `json:"therapist_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewIntakeCreatedEvent(intake *entity.PatientIntake) IntakeCreatedEvent {
	return IntakeCreatedEvent{
		BaseEvent: NewBaseEvent(EventIntakeCreated),
		Data: IntakeCreatedData{
			IntakeID:      intake.ID,
			FirstName:     intake.FirstName,
			LastName:      intake.LastName,
			DateOfBirth:   intake.DOB.Format(entity.DateLayout),
			TherapistName: intake.TherapistName,
			CreatedAt:     intake.CreatedAt,
		},
	}
}
