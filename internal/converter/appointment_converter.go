package converter

import (
	"time"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts entity to response DTO. now and
// leadTime feed the can_cancel read model.
func AppointmentToResponse(appointment *entity.Appointment, now time.Time, leadTime time.Duration) *dto.AppointmentResponse {
	response := &dto.AppointmentResponse{
		ID:                  appointment.ID,
		PatientID:           appointment.PatientID,
		DoctorID:            appointment.DoctorID,
		AppointmentDate:     appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime:     appointment.AppointmentTime,
		AppointmentDateTime: appointment.DateTime().Format(time.RFC3339),
		Status:              string(appointment.Status),
		Notes:               appointment.Notes,
		DoctorNotes:         appointment.DoctorNotes,
		CanCancel:           appointment.CanBeCancelled(now, leadTime),
		CreatedAt:           appointment.CreatedAt,
		UpdatedAt:           appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.PatientName = appointment.Patient.FullName
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.DoctorName = appointment.Doctor.FullName
		if appointment.Doctor.DoctorProfile != nil {
			response.DoctorSpecialization = appointment.Doctor.DoctorProfile.Specialization
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment, now time.Time, leadTime time.Duration) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], now, leadTime)
	}
	return responses
}
