package converter

import (
	"fmt"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
)

// TemplateToResponse converts entity to response DTO
func TemplateToResponse(template *entity.ScheduleTemplate) *dto.ScheduleTemplateResponse {
	response := &dto.ScheduleTemplateResponse{
		ID:           template.ID,
		DoctorID:     template.DoctorID,
		DayOfWeek:    template.DayOfWeek,
		DayName:      entity.WeekdayNames[template.DayOfWeek],
		StartTime:    template.StartTime,
		EndTime:      template.EndTime,
		IsWorkingDay: template.IsWorkingDay,
		SlotDuration: template.SlotDuration,
		IsRecurring:  template.IsRecurring,
		CreatedAt:    template.CreatedAt,
		UpdatedAt:    template.UpdatedAt,
	}

	if !template.IsRecurring && template.WeekStartDate != nil {
		weekStart := *template.WeekStartDate
		weekEnd := weekStart.AddDate(0, 0, 6)
		response.WeekStartDate = weekStart.Format("2006-01-02")
		response.WeekRange = fmt.Sprintf("%s - %s", weekStart.Format("Jan 02"), weekEnd.Format("Jan 02, 2006"))
	}

	return response
}

// TemplatesToResponses converts a slice of entities to response DTOs
func TemplatesToResponses(templates []entity.ScheduleTemplate) []dto.ScheduleTemplateResponse {
	responses := make([]dto.ScheduleTemplateResponse, len(templates))
	for i := range templates {
		responses[i] = *TemplateToResponse(&templates[i])
	}
	return responses
}

// DayOffToResponse converts entity to response DTO
func DayOffToResponse(dayOff *entity.DayOff) *dto.DayOffResponse {
	return &dto.DayOffResponse{
		ID:        dayOff.ID,
		DoctorID:  dayOff.DoctorID,
		Date:      dayOff.Date.Format("2006-01-02"),
		Reason:    dayOff.Reason,
		CreatedAt: dayOff.CreatedAt,
	}
}

// DayOffsToResponses converts a slice of entities to response DTOs
func DayOffsToResponses(dayOffs []entity.DayOff) []dto.DayOffResponse {
	responses := make([]dto.DayOffResponse, len(dayOffs))
	for i := range dayOffs {
		responses[i] = *DayOffToResponse(&dayOffs[i])
	}
	return responses
}

// DoctorToResponse converts a doctor profile with preloaded user to DTO
func DoctorToResponse(doctor *entity.DoctorProfile) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:              doctor.UserID,
		FullName:        doctor.User.FullName,
		Email:           doctor.User.Email,
		PhoneNumber:     doctor.User.PhoneNumber,
		Hospital:        doctor.Hospital,
		Clinic:          doctor.Clinic,
		Specialization:  doctor.Specialization,
		ConsultationFee: doctor.ConsultationFee.StringFixed(2),
	}
}
