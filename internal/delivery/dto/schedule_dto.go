package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertScheduleTemplateRequest struct {
	DayOfWeek     *int   `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime     string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime       string `json:"end_time" validate:"required,datetime=15:04"`
	IsWorkingDay  *bool  `json:"is_working_day" validate:"required"`
	SlotDuration  int    `json:"slot_duration" validate:"required,gte=5,lte=240"`
	IsRecurring   bool   `json:"is_recurring"`
	WeekStartDate string `json:"week_start_date" validate:"omitempty,datetime=2006-01-02"`
}

type ScheduleTemplateResponse struct {
	ID            int       `json:"id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	DayOfWeek     int       `json:"day_of_week"`
	DayName       string    `json:"day_name"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	IsWorkingDay  bool      `json:"is_working_day"`
	SlotDuration  int       `json:"slot_duration"`
	IsRecurring   bool      `json:"is_recurring"`
	WeekStartDate string    `json:"week_start_date,omitempty"`
	WeekRange     string    `json:"week_range,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ScheduleTemplateListResponse struct {
	Templates []ScheduleTemplateResponse `json:"templates"`
	Total     int                        `json:"total"`
}

type AddDayOffRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type DayOffResponse struct {
	ID        int       `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DayOffListResponse struct {
	DayOffs []DayOffResponse `json:"day_offs"`
	Total   int              `json:"total"`
}
