package entity

import "time"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status AppointmentStatus // empty = any status
	Date   *time.Time        // nil = any date
}
