package repository

import (
	"context"
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

type ScheduleTemplateRepository interface {
	Create(ctx context.Context, template *entity.ScheduleTemplate) error
	Update(ctx context.Context, template *entity.ScheduleTemplate) error
	FindByID(ctx context.Context, id int) (*entity.ScheduleTemplate, error)
	// FindRecurring returns the recurring template for (doctor, weekday), nil when absent.
	FindRecurring(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*entity.ScheduleTemplate, error)
	// FindPinned returns the week-pinned template for (doctor, weekday, weekStart), nil when absent.
	FindPinned(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, weekStart time.Time) (*entity.ScheduleTemplate, error)
	// FindForDoctor returns the recurring templates plus those pinned to weekStart.
	FindForDoctor(ctx context.Context, doctorID uuid.UUID, weekStart time.Time) ([]entity.ScheduleTemplate, error)
	Delete(ctx context.Context, id int) (int64, error)
}
