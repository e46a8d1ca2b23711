package repository

import (
	"context"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	// FindByUserID returns the doctor profile with its user preloaded,
	// nil when the user is not a doctor.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
}
