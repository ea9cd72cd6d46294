package converter

import (
	"testing"
	"time"

	"clinic-intake/internal/delivery/dto"
	"clinic-intake/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeFormToEntity(t *testing.T) {
	form := &dto.IntakeForm{
		FirstName:     "Jane",
		LastName:      "Doe",
		DOB:           "1990-05-17",
		TherapistName: "Dr. Rivera",
	}

	intake, err := IntakeFormToEntity(form)
	require.NoError(t, err)

	assert.Equal(t, "Jane", intake.FirstName)
	assert.Equal(t, "Doe", intake.LastName)
	assert.Equal(t, time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC), intake.DOB)
	assert.Equal(t, "Dr. Rivera", intake.TherapistName)
	assert.Zero(t, intake.ID)
}

func TestIntakeFormToEntity_BadDate(t *testing.T) {
	_, err := IntakeFormToEntity(&dto.IntakeForm{DOB: "17/05/1990"})

	assert.Error(t, err)
}

func TestIntakeToConfirmation(t *testing.T) {
	created := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	form := &dto.IntakeForm{FirstName: "Jane", LastName: "Doe", DOB: "1990-05-17", TherapistName: "Dr. Rivera"}

	page := IntakeToConfirmation(&entity.PatientIntake{ID: 7, CreatedAt: created}, form)

	require.NotNil(t, page)
	assert.Equal(t, int64(7), page.ID)
	assert.Equal(t, *form, page.Data)
	assert.Equal(t, created, page.CreatedAt)
	assert.Nil(t, IntakeToConfirmation(nil, form))
}
