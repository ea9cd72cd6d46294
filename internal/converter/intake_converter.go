package converter

import (
	"fmt"
	"time"

	"clinic-intake/internal/delivery/dto"
	"clinic-intake/internal/domain/entity"
)

// IntakeFormToEntity converts a validated form. DOB is stored as a UTC
// calendar date.
func IntakeFormToEntity(form *dto.IntakeForm) (*entity.PatientIntake, error) {
	dob, err := time.Parse(entity.DateLayout, form.DOB)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth %q: %w", form.DOB, err)
	}

	return &entity.PatientIntake{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		DOB:           dob,
		TherapistName: form.TherapistName,
	}, nil
}

// IntakeToConfirmation echoes the submitted form alongside the stored
// identifiers.
func IntakeToConfirmation(intake *entity.PatientIntake, form *dto.IntakeForm) *dto.ConfirmationPage {
	if intake == nil || form == nil {
		return nil
	}

	return &dto.ConfirmationPage{
		ID:        intake.ID,
		Data:      *form,
		CreatedAt: intake.CreatedAt,
	}
}
