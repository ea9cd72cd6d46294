package dto

import (
	"strings"
	"time"
)

// IntakeForm carries the four submitted fields as entered. Field order
// determines the order in which validation errors are reported.
type IntakeForm struct {
	FirstName     string `schema:"first_name" validate:"required" label:"Patient First Name"`
	LastName      string `schema:"last_name" validate:"required" label:"Patient Last Name"`
	DOB           string `schema:"dob" validate:"required,isodate,pastdate" label:"Date of Birth"`
	TherapistName string `schema:"therapist_name" validate:"required" label:"Therapist Name"`
}

// Normalize trims surrounding whitespace from every field.
func (f *IntakeForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.DOB = strings.TrimSpace(f.DOB)
	f.TherapistName = strings.TrimSpace(f.TherapistName)
}

// FormPage is the view model of the intake form.
type FormPage struct {
	Errors []string
	Data   IntakeForm
}

// ConfirmationPage echoes an accepted submission.
type ConfirmationPage struct {
	ID        int64
	Data      IntakeForm
	CreatedAt time.Time
}
