package repository

import (
	"context"
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

type DayOffRepository interface {
	Create(ctx context.Context, dayOff *entity.DayOff) error
	FindByID(ctx context.Context, id int) (*entity.DayOff, error)
	// FindByDoctorAndDate returns the day-off entry for (doctor, date), nil when absent.
	FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (*entity.DayOff, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.DayOff, error)
	Delete(ctx context.Context, id int) (int64, error)
}
