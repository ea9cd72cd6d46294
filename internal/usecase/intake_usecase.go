package usecase

import (
	"context"
	"fmt"

	"clinic-intake/internal/converter"
	"clinic-intake/internal/delivery/dto"
	"clinic-intake/internal/domain/repository"
	"clinic-intake/internal/infrastructure/database"
	"clinic-intake/internal/infrastructure/messaging"
	"clinic-intake/pkg/requestid"

	"github.com/sirupsen/logrus"
)

type IntakeUsecase interface {
	Submit(ctx context.Context, form *dto.IntakeForm) (*dto.ConfirmationPage, error)
}

type intakeUsecase struct {
	connector  database.Connector
	log        *logrus.Logger
	intakeRepo repository.PatientIntakeRepository
	publisher  messaging.Publisher
}

func NewIntakeUsecase(
	connector database.Connector,
	log *logrus.Logger,
	intakeRepo repository.PatientIntakeRepository,
	publisher messaging.Publisher,
) IntakeUsecase {
	return &intakeUsecase{
		connector:  connector,
		log:        log,
		intakeRepo: intakeRepo,
		publisher:  publisher,
	}
}

// Submit stores an already validated form and announces it. A failed
// announcement does not undo or fail the submission.
func (u *intakeUsecase) Submit(ctx context.Context, form *dto.IntakeForm) (*dto.ConfirmationPage, error) {
	intake, err := converter.IntakeFormToEntity(form)
	if err != nil {
		return nil, err
	}

	db, err := u.connector.DB(ctx)
	if err != nil {
		return nil, err
	}

	if err := u.intakeRepo.Create(ctx, db, intake); err != nil {
		return nil, fmt.Errorf("failed to insert patient intake: %w", err)
	}

	log := requestid.Logger(ctx, u.log).WithField("intake_id", intake.ID)
	log.Info("Patient intake recorded")

	if err := u.publisher.Publish(ctx, messaging.EventIntakeCreated, messaging.NewIntakeCreatedEvent(intake)); err != nil {
		log.Warnf("Failed to publish intake event: %+v", err)
	}

	return converter.IntakeToConfirmation(intake, form), nil
}
