package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxAvailabilityRangeDays caps availability range queries (inclusive
// day count). Larger ranges are rejected, never truncated.
const MaxAvailabilityRangeDays = 31

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrRangeTooLarge    = errors.New("date range cannot exceed 31 days")
)

// TimeSlot is one bookable interval, half-open [Start, End). Booked
// marks slots already held by a pending or confirmed appointment.
type TimeSlot struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Booked bool   `json:"booked"`
}

// EffectiveSchedule is the tagged outcome of schedule resolution for a
// single (doctor, date): either unavailable with a reason, or available
// with the template that governs the day.
type EffectiveSchedule struct {
	Available bool
	Reason    string
	Template  *entity.ScheduleTemplate
}

// DayAvailability is the per-day view returned to callers.
type DayAvailability struct {
	Date              time.Time
	DayName           string
	IsAvailable       bool
	Slots             []TimeSlot
	WorkingStart      string
	WorkingEnd        string
	UnavailableReason string
}

type AvailabilityUsecase interface {
	// ResolveDay applies precedence day-off > week-pinned > recurring and
	// expands the effective schedule into slots. Recomputed on every call;
	// templates and day-offs may change between calls.
	ResolveDay(ctx context.Context, doctorID uuid.UUID, date time.Time) (*DayAvailability, error)
	// GetAvailability resolves each day of [startDate, endDate] independently.
	GetAvailability(ctx context.Context, doctorID uuid.UUID, startDate, endDate time.Time) (*entity.DoctorProfile, []DayAvailability, error)
}

// scheduleResolver inspects one source of schedule truth. A nil result
// with nil error means "no opinion, ask the next resolver".
type scheduleResolver func(ctx context.Context, doctorID uuid.UUID, date time.Time) (*EffectiveSchedule, error)

type availabilityUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorProfileRepository
	templateRepo    repository.ScheduleTemplateRepository
	dayOffRepo      repository.DayOffRepository
	appointmentRepo repository.AppointmentRepository
	resolvers       []scheduleResolver
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	templateRepo repository.ScheduleTemplateRepository,
	dayOffRepo repository.DayOffRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	u := &availabilityUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		templateRepo:    templateRepo,
		dayOffRepo:      dayOffRepo,
		appointmentRepo: appointmentRepo,
	}
	// Precedence order: first match wins. A pinned template beats the
	// recurring one even when it marks the day closed; pinned rows model
	// explicit schedule edits for that week.
	u.resolvers = []scheduleResolver{
		u.resolveDayOff,
		u.resolvePinnedWeek,
		u.resolveRecurring,
	}
	return u
}

func (u *availabilityUsecase) resolveDayOff(ctx context.Context, doctorID uuid.UUID, date time.Time) (*EffectiveSchedule, error) {
	dayOff, err := u.dayOffRepo.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if dayOff == nil {
		return nil, nil
	}
	return &EffectiveSchedule{Available: false, Reason: dayOff.DisplayReason()}, nil
}

func (u *availabilityUsecase) resolvePinnedWeek(ctx context.Context, doctorID uuid.UUID, date time.Time) (*EffectiveSchedule, error) {
	weekStart := entity.WeekStartOf(date)
	template, err := u.templateRepo.FindPinned(ctx, doctorID, entity.DayOfWeekOf(date), weekStart)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return scheduleFromTemplate(template), nil
}

func (u *availabilityUsecase) resolveRecurring(ctx context.Context, doctorID uuid.UUID, date time.Time) (*EffectiveSchedule, error) {
	template, err := u.templateRepo.FindRecurring(ctx, doctorID, entity.DayOfWeekOf(date))
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	return scheduleFromTemplate(template), nil
}

func scheduleFromTemplate(template *entity.ScheduleTemplate) *EffectiveSchedule {
	if !template.IsWorkingDay {
		return &EffectiveSchedule{Available: false, Reason: "Not a working day"}
	}
	return &EffectiveSchedule{Available: true, Template: template}
}

// resolveEffective runs the resolver pipeline for one date.
func (u *availabilityUsecase) resolveEffective(ctx context.Context, doctorID uuid.UUID, date time.Time) (*EffectiveSchedule, error) {
	for _, resolve := range u.resolvers {
		schedule, err := resolve(ctx, doctorID, date)
		if err != nil {
			return nil, err
		}
		if schedule != nil {
			return schedule, nil
		}
	}
	return &EffectiveSchedule{Available: false, Reason: "Not a working day"}, nil
}

func (u *availabilityUsecase) ResolveDay(ctx context.Context, doctorID uuid.UUID, date time.Time) (*DayAvailability, error) {
	schedule, err := u.resolveEffective(ctx, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to resolve schedule for doctor %s on %s: %+v", doctorID, date.Format("2006-01-02"), err)
		return nil, err
	}

	day := &DayAvailability{
		Date:    date,
		DayName: entity.WeekdayNames[entity.DayOfWeekOf(date)],
	}

	if !schedule.Available {
		day.UnavailableReason = schedule.Reason
		return day, nil
	}

	slots, err := expandSlots(schedule.Template.StartTime, schedule.Template.EndTime, schedule.Template.SlotDuration)
	if err != nil {
		return nil, fmt.Errorf("expand slots for template %d: %w", schedule.Template.ID, err)
	}
	if err := u.markBookedSlots(ctx, doctorID, date, slots); err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s on %s: %+v", doctorID, date.Format("2006-01-02"), err)
		return nil, err
	}

	day.IsAvailable = true
	day.Slots = slots
	day.WorkingStart = clockString(schedule.Template.StartTime)
	day.WorkingEnd = clockString(schedule.Template.EndTime)
	return day, nil
}

// markBookedSlots flags each slot holding an active appointment. An
// appointment anywhere inside [start, end) occupies the whole slot.
func (u *availabilityUsecase) markBookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []TimeSlot) error {
	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		return nil
	}

	for i := range slots {
		start, err := parseClock(slots[i].Start)
		if err != nil {
			continue
		}
		end, err := parseClock(slots[i].End)
		if err != nil {
			continue
		}
		for j := range appointments {
			minute, err := parseClock(appointments[j].AppointmentTime)
			if err != nil {
				continue
			}
			if minute >= start && minute < end {
				slots[i].Booked = true
				break
			}
		}
	}
	return nil
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, startDate, endDate time.Time) (*entity.DoctorProfile, []DayAvailability, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, nil, err
	}
	if doctor == nil {
		return nil, nil, ErrDoctorNotFound
	}

	startDate = truncateToDay(startDate)
	endDate = truncateToDay(endDate)
	if endDate.Before(startDate) {
		return nil, nil, ErrInvalidDateRange
	}
	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > MaxAvailabilityRangeDays {
		return nil, nil, ErrRangeTooLarge
	}

	availability := make([]DayAvailability, 0, days)
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		day, err := u.ResolveDay(ctx, doctorID, date)
		if err != nil {
			return nil, nil, err
		}
		availability = append(availability, *day)
	}

	return doctor, availability, nil
}

// expandSlots divides [startTime, endTime) into consecutive slots of
// slotDuration minutes. The last slot whose end would pass endTime is
// not emitted.
func expandSlots(startTime, endTime string, slotDuration int) ([]TimeSlot, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}
	if slotDuration <= 0 {
		return nil, fmt.Errorf("invalid slot duration %d", slotDuration)
	}

	var slots []TimeSlot
	for cur := start; cur+slotDuration <= end; cur += slotDuration {
		slots = append(slots, TimeSlot{
			Start: formatClock(cur),
			End:   formatClock(cur + slotDuration),
		})
	}
	return slots, nil
}

// parseClock converts "HH:MM" (or "HH:MM:SS", as Postgres time columns
// scan back) to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// clockString normalizes a stored time column to "HH:MM" for display.
func clockString(s string) string {
	minutes, err := parseClock(s)
	if err != nil {
		return s
	}
	return formatClock(minutes)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
