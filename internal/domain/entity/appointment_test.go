package entity

import (
	"testing"
	"time"
)

func TestAppointmentDateTime(t *testing.T) {
	appointment := &Appointment{
		AppointmentDate: time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:30",
	}
	want := time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC)
	if got := appointment.DateTime(); !got.Equal(want) {
		t.Errorf("DateTime() = %s, want %s", got, want)
	}

	// time columns scan back with seconds
	appointment.AppointmentTime = "09:30:00"
	if got := appointment.DateTime(); !got.Equal(want) {
		t.Errorf("DateTime() with seconds = %s, want %s", got, want)
	}
}

func TestCanBeCancelled(t *testing.T) {
	appointment := &Appointment{
		AppointmentDate: time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		Status:          AppointmentStatusPending,
	}
	leadTime := 2 * time.Hour

	cases := []struct {
		name   string
		now    time.Time
		status AppointmentStatus
		want   bool
	}{
		{"WellBefore", time.Date(2026, time.September, 7, 6, 0, 0, 0, time.UTC), AppointmentStatusPending, true},
		{"ExactlyAtCutoff", time.Date(2026, time.September, 7, 7, 0, 0, 0, time.UTC), AppointmentStatusPending, false},
		{"InsideWindow", time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC), AppointmentStatusPending, false},
		{"ConfirmedBefore", time.Date(2026, time.September, 7, 6, 0, 0, 0, time.UTC), AppointmentStatusConfirmed, true},
		{"AlreadyCancelled", time.Date(2026, time.September, 7, 6, 0, 0, 0, time.UTC), AppointmentStatusCancelled, false},
		{"AlreadyCompleted", time.Date(2026, time.September, 7, 6, 0, 0, 0, time.UTC), AppointmentStatusCompleted, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			appointment.Status = c.status
			if got := appointment.CanBeCancelled(c.now, leadTime); got != c.want {
				t.Errorf("CanBeCancelled(%s, %s) = %v, want %v", c.now, leadTime, got, c.want)
			}
		})
	}
}
