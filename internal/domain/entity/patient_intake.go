package entity

import "time"

// PatientIntake is a single accepted intake submission. Rows are
// insert-only.
type PatientIntake struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string    `gorm:"type:text;not null" json:"first_name"`
	LastName      string    `gorm:"type:text;not null" json:"last_name"`
	DOB           time.Time `gorm:"column:dob;type:date;not null" json:"dob"`
	TherapistName string    `gorm:"type:text;not null" json:"therapist_name"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP;autoCreateTime:false" json:"created_at"`
}

func (PatientIntake) TableName() string {
	return "patients"
}

// DateLayout is the wire and storage format of DOB.
const DateLayout = "2006-01-02"
