package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// ActiveStatuses are the statuses that occupy a slot.
var ActiveStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
}

// Appointment represents a patient's reservation of a doctor's time slot.
// The (doctor, date, time) triple carries the mutual-exclusion contract:
// at most one appointment in an active status may exist per triple.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:time;not null" json:"appointment_time"` // "HH:MM"
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	DoctorNotes     string            `gorm:"type:text" json:"doctor_notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// DateTime combines AppointmentDate and AppointmentTime into one instant
// in the date's location. A malformed time column yields the date at
// midnight.
func (a *Appointment) DateTime() time.Time {
	t, err := time.Parse("15:04", a.AppointmentTime)
	if err != nil {
		// time columns scan back as HH:MM:SS
		t, err = time.Parse("15:04:05", a.AppointmentTime)
		if err != nil {
			t = time.Time{}
		}
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// IsTerminal reports whether the status accepts no further transition.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}

// CanBeCancelled applies the cancellation policy: the appointment must
// still be active and now must be at least leadTime before the
// appointment instant.
func (a *Appointment) CanBeCancelled(now time.Time, leadTime time.Duration) bool {
	if !a.IsActive() {
		return false
	}
	return now.Before(a.DateTime().Add(-leadTime))
}
