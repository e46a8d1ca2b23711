package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotTaken is returned by Create when the store's active-slot
// uniqueness constraint rejects the insert. It is the storage-level
// signal that a concurrent booking won the race.
var ErrSlotTaken = errors.New("slot already taken")

type AppointmentRepository interface {
	// Create inserts the appointment. A storage-level collision on the
	// active-slot unique index is returned as ErrSlotTaken.
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindActiveBySlot returns the pending/confirmed appointment occupying
	// (doctor, date, time), nil when the slot is free.
	FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error)
	// FindActiveByDoctorAndDate returns all pending/confirmed appointments
	// for the doctor on the date.
	FindActiveByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateStatusIf transitions the appointment from one of fromStatuses
	// to toStatus. Returns affected rows: 0 means a concurrent transition
	// won the race.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, fromStatuses []entity.AppointmentStatus, toStatus entity.AppointmentStatus) (int64, error)
	// UpdateNotes persists the notes columns named in fields only.
	UpdateNotes(ctx context.Context, appointment *entity.Appointment, fields []string) error
}
