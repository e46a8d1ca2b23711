package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// 2026-09-07 is a Monday.
var monday = day(2026, time.September, 7)

func recurringTemplate(doctorID uuid.UUID, dayOfWeek int, start, end string, slotDuration int) *entity.ScheduleTemplate {
	return &entity.ScheduleTemplate{
		DoctorID:     doctorID,
		DayOfWeek:    dayOfWeek,
		StartTime:    start,
		EndTime:      end,
		IsWorkingDay: true,
		SlotDuration: slotDuration,
		IsRecurring:  true,
	}
}

func TestResolveDayExpandsSlots(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	templateRepo := &fakeTemplateRepo{}
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "12:00", 30))

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, &fakeDayOffRepo{}, newFakeAppointmentRepo())

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if !result.IsAvailable {
		t.Fatalf("expected available day, got reason %q", result.UnavailableReason)
	}
	if result.DayName != "Monday" {
		t.Errorf("expected day name Monday, got %q", result.DayName)
	}
	if len(result.Slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(result.Slots))
	}
	if result.Slots[0].Start != "09:00" || result.Slots[0].End != "09:30" {
		t.Errorf("unexpected first slot %+v", result.Slots[0])
	}
	if result.Slots[5].Start != "11:30" || result.Slots[5].End != "12:00" {
		t.Errorf("unexpected last slot %+v", result.Slots[5])
	}
	if result.WorkingStart != "09:00" || result.WorkingEnd != "12:00" {
		t.Errorf("unexpected working hours %s - %s", result.WorkingStart, result.WorkingEnd)
	}
}

func TestResolveDayFlagsBookedSlots(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	templateRepo := &fakeTemplateRepo{}
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "12:00", 30))

	appointmentRepo := newFakeAppointmentRepo()
	appointmentRepo.Create(ctx, &entity.Appointment{
		DoctorID:        doctorID,
		PatientID:       uuid.New(),
		AppointmentDate: monday,
		AppointmentTime: "09:30",
		Status:          entity.AppointmentStatusPending,
	})
	// Cancelled appointments release the slot.
	appointmentRepo.Create(ctx, &entity.Appointment{
		DoctorID:        doctorID,
		PatientID:       uuid.New(),
		AppointmentDate: monday,
		AppointmentTime: "10:00",
		Status:          entity.AppointmentStatusCancelled,
	})

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, &fakeDayOffRepo{}, appointmentRepo)

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if len(result.Slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(result.Slots))
	}
	for _, slot := range result.Slots {
		if slot.Start == "09:30" {
			if !slot.Booked {
				t.Errorf("expected slot %s to be booked", slot.Start)
			}
			continue
		}
		if slot.Booked {
			t.Errorf("expected slot %s to be free", slot.Start)
		}
	}
}

func TestResolveDayPartialTrailingSlotDropped(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	templateRepo := &fakeTemplateRepo{}
	// 100 minutes at 45-minute slots: only two full slots fit
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "10:40", 45))

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, &fakeDayOffRepo{}, newFakeAppointmentRepo())

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if len(result.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(result.Slots))
	}
	if result.Slots[1].End != "10:30" {
		t.Errorf("expected last slot to end at 10:30, got %s", result.Slots[1].End)
	}
}

func TestResolveDayWithoutTemplate(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), &fakeTemplateRepo{}, &fakeDayOffRepo{}, newFakeAppointmentRepo())

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if result.IsAvailable {
		t.Fatal("expected day without any template to be unavailable")
	}
	if result.UnavailableReason != "Not a working day" {
		t.Errorf("unexpected reason %q", result.UnavailableReason)
	}
}

func TestPinnedWeekOverridesRecurring(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()
	nextMonday := day(2026, time.September, 14)

	templateRepo := &fakeTemplateRepo{}
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "12:00", 30))
	pinned := recurringTemplate(doctorID, 0, "14:00", "16:00", 60)
	pinned.IsRecurring = false
	pinned.WeekStartDate = &nextMonday
	templateRepo.Create(ctx, pinned)

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, &fakeDayOffRepo{}, newFakeAppointmentRepo())

	t.Run("PinnedWeek", func(t *testing.T) {
		result, err := uc.ResolveDay(ctx, doctorID, nextMonday)
		if err != nil {
			t.Fatalf("ResolveDay: %v", err)
		}
		if len(result.Slots) != 2 {
			t.Fatalf("expected pinned template's 2 slots, got %d", len(result.Slots))
		}
		if result.Slots[0].Start != "14:00" {
			t.Errorf("expected pinned hours, got first slot at %s", result.Slots[0].Start)
		}
	})

	t.Run("OtherWeeksKeepRecurring", func(t *testing.T) {
		result, err := uc.ResolveDay(ctx, doctorID, monday)
		if err != nil {
			t.Fatalf("ResolveDay: %v", err)
		}
		if len(result.Slots) != 6 {
			t.Fatalf("expected recurring template's 6 slots, got %d", len(result.Slots))
		}
	})
}

func TestPinnedClosedDayBeatsRecurringOpen(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	templateRepo := &fakeTemplateRepo{}
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "12:00", 30))
	pinned := recurringTemplate(doctorID, 0, "09:00", "12:00", 30)
	pinned.IsRecurring = false
	pinned.IsWorkingDay = false
	pinned.WeekStartDate = &monday
	templateRepo.Create(ctx, pinned)

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, &fakeDayOffRepo{}, newFakeAppointmentRepo())

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if result.IsAvailable {
		t.Fatal("pinned non-working template should close the day despite the recurring one")
	}
}

func TestDayOffBeatsTemplates(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	templateRepo := &fakeTemplateRepo{}
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "12:00", 30))

	dayOffRepo := &fakeDayOffRepo{}
	dayOffRepo.Create(ctx, &entity.DayOff{DoctorID: doctorID, Date: monday, Reason: "Conference"})

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, dayOffRepo, newFakeAppointmentRepo())

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if result.IsAvailable {
		t.Fatal("expected day off to win over the recurring template")
	}
	if result.UnavailableReason != "Conference" {
		t.Errorf("expected day-off reason, got %q", result.UnavailableReason)
	}
	if len(result.Slots) != 0 {
		t.Errorf("expected no slots on a day off, got %d", len(result.Slots))
	}
}

func TestDayOffDefaultReason(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	dayOffRepo := &fakeDayOffRepo{}
	dayOffRepo.Create(ctx, &entity.DayOff{DoctorID: doctorID, Date: monday})

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), &fakeTemplateRepo{}, dayOffRepo, newFakeAppointmentRepo())

	result, err := uc.ResolveDay(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	if result.UnavailableReason != "Day off" {
		t.Errorf("expected default reason, got %q", result.UnavailableReason)
	}
}

func TestGetAvailabilityRange(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	templateRepo := &fakeTemplateRepo{}
	templateRepo.Create(ctx, recurringTemplate(doctorID, 0, "09:00", "12:00", 30))

	uc := NewAvailabilityUsecase(testLogger(), newFakeDoctorRepo(doctorID), templateRepo, &fakeDayOffRepo{}, newFakeAppointmentRepo())

	t.Run("ThirtyDays", func(t *testing.T) {
		end := monday.AddDate(0, 0, 29)
		doctor, days, err := uc.GetAvailability(ctx, doctorID, monday, end)
		if err != nil {
			t.Fatalf("GetAvailability: %v", err)
		}
		if doctor == nil || doctor.UserID != doctorID {
			t.Fatal("expected the doctor profile back")
		}
		if len(days) != 30 {
			t.Fatalf("expected 30 days, got %d", len(days))
		}
		for i, d := range days {
			if !sameDay(d.Date, monday.AddDate(0, 0, i)) {
				t.Fatalf("day %d out of order: %s", i, d.Date.Format("2006-01-02"))
			}
		}
		// Mondays are the only working days in this schedule
		if !days[0].IsAvailable || days[1].IsAvailable {
			t.Error("expected only Mondays to be available")
		}
	})

	t.Run("SingleDay", func(t *testing.T) {
		_, days, err := uc.GetAvailability(ctx, doctorID, monday, monday)
		if err != nil {
			t.Fatalf("GetAvailability: %v", err)
		}
		if len(days) != 1 {
			t.Fatalf("expected 1 day, got %d", len(days))
		}
	})

	t.Run("RangeTooLarge", func(t *testing.T) {
		_, _, err := uc.GetAvailability(ctx, doctorID, monday, monday.AddDate(0, 0, 31))
		if !errors.Is(err, ErrRangeTooLarge) {
			t.Fatalf("expected ErrRangeTooLarge, got %v", err)
		}
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, _, err := uc.GetAvailability(ctx, doctorID, monday, monday.AddDate(0, 0, -1))
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("UnknownDoctor", func(t *testing.T) {
		_, _, err := uc.GetAvailability(ctx, uuid.New(), monday, monday)
		if !errors.Is(err, ErrDoctorNotFound) {
			t.Fatalf("expected ErrDoctorNotFound, got %v", err)
		}
	})
}
