package handler

import (
	"errors"
	"net/http"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailability handles GET /doctors/{doctorId}/availability
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	startParam := r.URL.Query().Get("start_date")
	if startParam == "" {
		response.Error(w, http.StatusBadRequest, "start_date query parameter is required", nil)
		return
	}
	startDate, err := time.Parse("2006-01-02", startParam)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid start_date format, use YYYY-MM-DD", nil)
		return
	}

	endDate := startDate
	if endParam := r.URL.Query().Get("end_date"); endParam != "" {
		endDate, err = time.Parse("2006-01-02", endParam)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid end_date format, use YYYY-MM-DD", nil)
			return
		}
	}

	doctor, days, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidDateRange):
			response.Error(w, http.StatusBadRequest, "End date must not be before start date", nil)
		case errors.Is(err, usecase.ErrRangeTooLarge):
			response.Error(w, http.StatusBadRequest, "Date range cannot exceed 31 days", nil)
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	result := &dto.AvailabilityResponse{
		Doctor:       *converter.DoctorToResponse(doctor),
		Availability: make([]dto.DayAvailabilityResponse, len(days)),
	}
	for i := range days {
		result.Availability[i] = dayToResponse(&days[i])
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", result)
}

func dayToResponse(day *usecase.DayAvailability) dto.DayAvailabilityResponse {
	resp := dto.DayAvailabilityResponse{
		Date:        day.Date.Format("2006-01-02"),
		DayName:     day.DayName,
		IsAvailable: day.IsAvailable,
		Slots:       make([]dto.SlotResponse, len(day.Slots)),
	}
	for i, slot := range day.Slots {
		resp.Slots[i] = dto.SlotResponse{Start: slot.Start, End: slot.End, Booked: slot.Booked}
	}
	if day.IsAvailable {
		resp.WorkingHours = &dto.WorkingHoursResponse{
			Start: day.WorkingStart,
			End:   day.WorkingEnd,
		}
	} else {
		resp.ReasonUnavailable = day.UnavailableReason
	}
	return resp
}
