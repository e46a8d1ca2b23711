package dto

import "github.com/google/uuid"

type SlotResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Booked bool   `json:"booked"`
}

type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayAvailabilityResponse struct {
	Date              string                `json:"date"`
	DayName           string                `json:"day_name"`
	IsAvailable       bool                  `json:"is_available"`
	Slots             []SlotResponse        `json:"slots"`
	WorkingHours      *WorkingHoursResponse `json:"working_hours,omitempty"`
	ReasonUnavailable string                `json:"reason_unavailable,omitempty"`
}

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	Hospital        string    `json:"hospital,omitempty"`
	Clinic          string    `json:"clinic,omitempty"`
	Specialization  string    `json:"specialization"`
	ConsultationFee string    `json:"consultation_fee"`
}

type AvailabilityResponse struct {
	Doctor       DoctorResponse            `json:"doctor"`
	Availability []DayAvailabilityResponse `json:"availability"`
}
