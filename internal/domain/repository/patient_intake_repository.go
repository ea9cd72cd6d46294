package repository

import (
	"context"

	"clinic-intake/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientIntakeRepository interface {
	Create(ctx context.Context, db *gorm.DB, intake *entity.PatientIntake) error
}
