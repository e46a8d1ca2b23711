package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"
	"clinic-appointment-service/pkg/validator"

	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// UpsertTemplate handles PUT /schedule-templates
func (h *ScheduleHandler) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.UpsertScheduleTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.scheduleUsecase.UpsertTemplate(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidWeekStart),
			errors.Is(err, usecase.ErrInvalidAppointmentTime):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to save schedule template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule template saved successfully", template)
}

// ListTemplates handles GET /schedule-templates
func (h *ScheduleHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	templates, err := h.scheduleUsecase.ListTemplates(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list schedule templates")
		return
	}

	response.Success(w, http.StatusOK, "Schedule templates retrieved successfully", templates)
}

// DeleteTemplate handles DELETE /schedule-templates/{id}
func (h *ScheduleHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	templateID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid template ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteTemplate(r.Context(), doctorID, templateID); err != nil {
		if errors.Is(err, usecase.ErrTemplateNotFound) {
			response.NotFound(w, "Schedule template not found")
			return
		}
		response.InternalServerError(w, "Failed to delete schedule template")
		return
	}

	response.Success(w, http.StatusOK, "Schedule template deleted successfully", nil)
}

// AddDayOff handles POST /day-offs
func (h *ScheduleHandler) AddDayOff(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.AddDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dayOff, err := h.scheduleUsecase.AddDayOff(r.Context(), doctorID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDayOffDate) {
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.InternalServerError(w, "Failed to add day off")
		return
	}

	response.Success(w, http.StatusCreated, "Day off added successfully", dayOff)
}

// ListDayOffs handles GET /day-offs
func (h *ScheduleHandler) ListDayOffs(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	dayOffs, err := h.scheduleUsecase.ListDayOffs(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list day offs")
		return
	}

	response.Success(w, http.StatusOK, "Day offs retrieved successfully", dayOffs)
}

// DeleteDayOff handles DELETE /day-offs/{id}
func (h *ScheduleHandler) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	dayOffID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid day off ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteDayOff(r.Context(), doctorID, dayOffID); err != nil {
		if errors.Is(err, usecase.ErrDayOffNotFound) {
			response.NotFound(w, "Day off not found")
			return
		}
		response.InternalServerError(w, "Failed to delete day off")
		return
	}

	response.Success(w, http.StatusOK, "Day off deleted successfully", nil)
}
