package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04"`
	Notes           string    `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateAppointmentRequest carries every field either role may submit.
// Role-based masking in the usecase decides which ones actually apply;
// fields outside the caller's allow-list are dropped, not rejected.
type UpdateAppointmentRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
	DoctorNotes *string `json:"doctor_notes" validate:"omitempty,max=2000"`
}

type AppointmentResponse struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patient_id"`
	PatientName          string    `json:"patient_name,omitempty"`
	DoctorID             uuid.UUID `json:"doctor_id"`
	DoctorName           string    `json:"doctor_name,omitempty"`
	DoctorSpecialization string    `json:"doctor_specialization,omitempty"`
	AppointmentDate      string    `json:"appointment_date"`
	AppointmentTime      string    `json:"appointment_time"`
	AppointmentDateTime  string    `json:"appointment_datetime"`
	Status               string    `json:"status"`
	Notes                string    `json:"notes,omitempty"`
	DoctorNotes          string    `json:"doctor_notes,omitempty"`
	CanCancel            bool      `json:"can_cancel"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
