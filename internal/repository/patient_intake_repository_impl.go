package repository

import (
	"context"

	"clinic-intake/internal/domain/entity"
	domainRepo "clinic-intake/internal/domain/repository"

	"gorm.io/gorm"
)

type patientIntakeRepository struct{}

func NewPatientIntakeRepository() domainRepo.PatientIntakeRepository {
	return &patientIntakeRepository{}
}

func (r *patientIntakeRepository) Create(ctx context.Context, db *gorm.DB, intake *entity.PatientIntake) error {
	return db.WithContext(ctx).Create(intake).Error
}
