package entity

import (
	"time"

	"github.com/google/uuid"
)

// DayOff marks a doctor fully unavailable on one date, regardless of
// any schedule template. At most one row per (doctor, date).
type DayOff struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_doctor_day_off" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uniq_doctor_day_off" json:"date"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DayOff) TableName() string {
	return "day_offs"
}

// DisplayReason returns the stored reason or a generic fallback.
func (d *DayOff) DisplayReason() string {
	if d.Reason != "" {
		return d.Reason
	}
	return "Day off"
}
