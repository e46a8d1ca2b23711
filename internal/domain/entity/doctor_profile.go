package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Hospital        string          `gorm:"type:varchar(255)" json:"hospital,omitempty"`
	Clinic          string          `gorm:"type:varchar(255)" json:"clinic,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"consultation_fee"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User      User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Templates []ScheduleTemplate `gorm:"foreignKey:DoctorID" json:"templates,omitempty"`
	DayOffs   []DayOff           `gorm:"foreignKey:DoctorID" json:"day_offs,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
