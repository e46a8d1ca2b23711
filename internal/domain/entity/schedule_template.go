package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleTemplate defines a doctor's working hours for one weekday.
// A recurring template applies every week; a non-recurring one is pinned
// to the Monday-anchored week stored in WeekStartDate and overrides the
// recurring template for that week only.
type ScheduleTemplate struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek     int        `gorm:"type:smallint;not null" json:"day_of_week"` // 0=Monday .. 6=Sunday
	StartTime     string     `gorm:"type:time;not null" json:"start_time"`      // "HH:MM"
	EndTime       string     `gorm:"type:time;not null" json:"end_time"`        // "HH:MM"
	IsWorkingDay  bool       `gorm:"not null;default:true" json:"is_working_day"`
	SlotDuration  int        `gorm:"not null;default:30" json:"slot_duration"` // minutes
	IsRecurring   bool       `gorm:"not null;default:true;index" json:"is_recurring"`
	WeekStartDate *time.Time `gorm:"type:date;index" json:"week_start_date,omitempty"` // always a Monday, nil when recurring
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (ScheduleTemplate) TableName() string {
	return "schedule_templates"
}

// Weekday names indexed by DayOfWeek (Monday=0)
var WeekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayOfWeekOf converts a calendar date to the Monday=0 weekday index.
func DayOfWeekOf(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekStartOf returns the Monday of the week containing date, truncated
// to midnight in the date's location.
func WeekStartOf(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return d.AddDate(0, 0, -DayOfWeekOf(d))
}
