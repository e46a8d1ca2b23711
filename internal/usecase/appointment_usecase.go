package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrPastDateTime            = errors.New("appointment must be scheduled for a future date and time")
	ErrDoctorUnavailable       = errors.New("doctor is not available on this date")
	ErrOutsideWorkingHours     = errors.New("appointment time is outside working hours")
	ErrSlotAlreadyBooked       = errors.New("this time slot is already booked")
	ErrCannotCancel            = errors.New("appointment can no longer be cancelled")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidAppointmentDate  = errors.New("invalid appointment date format, use YYYY-MM-DD")
	ErrInvalidAppointmentTime  = errors.New("invalid appointment time format, use HH:MM")
)

// editableFields is the per-role allow-list consulted before applying
// any update. Submitted fields outside the caller's list are silently
// dropped.
var editableFields = map[int]map[string]bool{
	entity.RoleIDDoctor:  {"status": true, "doctor_notes": true},
	entity.RoleIDPatient: {"notes": true},
}

// allowedTransitions is the appointment status state machine. Terminal
// states (cancelled, completed) have no outgoing edges; anything not
// listed here, including confirmed back to pending, is rejected.
var allowedTransitions = map[entity.AppointmentStatus][]entity.AppointmentStatus{
	entity.AppointmentStatusPending: {
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusCompleted,
	},
	entity.AppointmentStatusConfirmed: {
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusCompleted,
	},
}

func transitionAllowed(from, to entity.AppointmentStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type AppointmentUsecase interface {
	// Book validates the requested slot and creates a pending
	// appointment. Preconditions are checked in order; the first
	// violation wins.
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, principalID uuid.UUID, roleID int, statusFilter, dateFilter string) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	availability    AvailabilityUsecase
	slotLocker      service.SlotLocker
	audit           service.AuditService
	cancelLeadTime  time.Duration
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	availability AvailabilityUsecase,
	slotLocker service.SlotLocker,
	audit service.AuditService,
	cancelLeadTime time.Duration,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		availability:    availability,
		slotLocker:      slotLocker,
		audit:           audit,
		cancelLeadTime:  cancelLeadTime,
		now:             time.Now,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidAppointmentDate
	}
	slotMinutes, err := parseClock(req.AppointmentTime)
	if err != nil {
		return nil, ErrInvalidAppointmentTime
	}
	timeOfDay := formatClock(slotMinutes)

	now := u.now()

	// Precondition 1: strictly in the future, regardless of schedule state
	appointmentAt := time.Date(date.Year(), date.Month(), date.Day(),
		slotMinutes/60, slotMinutes%60, 0, 0, now.Location())
	if !appointmentAt.After(now) {
		return nil, ErrPastDateTime
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Precondition 2: the doctor works that day
	day, err := u.availability.ResolveDay(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if !day.IsAvailable {
		return nil, fmt.Errorf("%w: %s", ErrDoctorUnavailable, day.UnavailableReason)
	}

	// Precondition 3: the time falls inside a bookable slot
	if !timeWithinSlots(day.Slots, slotMinutes) {
		return nil, fmt.Errorf("%w: working hours are %s - %s",
			ErrOutsideWorkingHours, day.WorkingStart, day.WorkingEnd)
	}

	// Precondition 4: the slot is free. Check-then-create runs under a
	// per-slot lock so two concurrent requests cannot both pass the
	// check; the store's unique index backstops the lock.
	acquired, err := u.slotLocker.Acquire(ctx, req.DoctorID, date, timeOfDay)
	if err != nil {
		u.log.Warnf("Failed to acquire slot lock for doctor %s at %s %s: %+v", req.DoctorID, req.AppointmentDate, timeOfDay, err)
		return nil, err
	}
	if !acquired {
		return nil, ErrSlotAlreadyBooked
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.slotLocker.Release(releaseCtx, req.DoctorID, date, timeOfDay); err != nil {
			u.log.Warnf("Failed to release slot lock (non-fatal, TTL will expire it): %+v", err)
		}
	}()

	existing, err := u.appointmentRepo.FindActiveBySlot(ctx, req.DoctorID, date, timeOfDay)
	if err != nil {
		u.log.Warnf("Failed to check slot occupancy: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotAlreadyBooked
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Status:          entity.AppointmentStatusPending,
		Notes:           req.Notes,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Errorf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &patientID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           req.AppointmentDate,
		"time":           timeOfDay,
	})

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, time=%s", appointment.ID, req.DoctorID, req.AppointmentDate, timeOfDay)

	full, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment, now, u.cancelLeadTime), nil
	}
	return converter.AppointmentToResponse(full, now, u.cancelLeadTime), nil
}

func (u *appointmentUsecase) List(ctx context.Context, principalID uuid.UUID, roleID int, statusFilter, dateFilter string) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{}
	if statusFilter != "" {
		filter.Status = entity.AppointmentStatus(statusFilter)
	}
	if dateFilter != "" {
		// an unparseable date filter is ignored, not an error
		if date, err := time.Parse("2006-01-02", dateFilter); err == nil {
			filter.Date = &date
		}
	}

	var appointments []entity.Appointment
	var err error
	switch roleID {
	case entity.RoleIDPatient:
		appointments, err = u.appointmentRepo.FindByPatientID(ctx, principalID, filter)
	case entity.RoleIDDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(ctx, principalID, filter)
	default:
		appointments = nil
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", principalID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.now(), u.cancelLeadTime),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int) (*dto.AppointmentResponse, error) {
	appointment, err := u.findOwned(ctx, id, principalID, roleID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment, u.now(), u.cancelLeadTime), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findOwned(ctx, id, principalID, roleID)
	if err != nil {
		return nil, err
	}

	allowed := editableFields[roleID]

	var noteFields []string
	if req.Notes != nil && allowed["notes"] {
		appointment.Notes = *req.Notes
		noteFields = append(noteFields, "notes")
	}
	if req.DoctorNotes != nil && allowed["doctor_notes"] {
		appointment.DoctorNotes = *req.DoctorNotes
		noteFields = append(noteFields, "doctor_notes")
	}

	var newStatus *entity.AppointmentStatus
	if req.Status != nil && allowed["status"] {
		status := entity.AppointmentStatus(*req.Status)
		if status != appointment.Status {
			newStatus = &status
		}
	}

	if newStatus != nil {
		if !transitionAllowed(appointment.Status, *newStatus) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, appointment.Status, *newStatus)
		}
		if *newStatus == entity.AppointmentStatusCancelled && !appointment.CanBeCancelled(u.now(), u.cancelLeadTime) {
			return nil, ErrCannotCancel
		}
		affected, err := u.appointmentRepo.UpdateStatusIf(ctx, id,
			[]entity.AppointmentStatus{appointment.Status}, *newStatus)
		if err != nil {
			u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
			return nil, err
		}
		if affected == 0 {
			// a concurrent transition moved the appointment first
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, appointment.Status, *newStatus)
		}
		appointment.Status = *newStatus
	}

	if len(noteFields) > 0 {
		if err := u.appointmentRepo.UpdateNotes(ctx, appointment, noteFields); err != nil {
			u.log.Warnf("Failed to update appointment %s notes: %+v", id, err)
			return nil, err
		}
	}

	if newStatus != nil || len(noteFields) > 0 {
		u.audit.Record(ctx, &principalID, entity.AuditActionAppointmentUpdate, entity.JSON{
			"appointment_id": id.String(),
			"status":         string(appointment.Status),
			"fields":         noteFields,
		})
	}

	return converter.AppointmentToResponse(appointment, u.now(), u.cancelLeadTime), nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int) error {
	appointment, err := u.findOwned(ctx, id, principalID, roleID)
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled(u.now(), u.cancelLeadTime) {
		return ErrCannotCancel
	}

	// Conditional update: a cancel racing a confirm/complete is decided
	// by whoever commits first.
	affected, err := u.appointmentRepo.UpdateStatusIf(ctx, id, entity.ActiveStatuses, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrCannotCancel
	}

	u.audit.Record(ctx, &principalID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": id.String(),
	})

	u.log.Infof("Appointment cancelled: id=%s, by=%s", id, principalID)
	return nil
}

// findOwned loads the appointment and verifies the principal is a
// party to it. Missing and not-owned are indistinguishable to the
// caller.
func (u *appointmentUsecase) findOwned(ctx context.Context, id uuid.UUID, principalID uuid.UUID, roleID int) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDPatient:
		if appointment.PatientID != principalID {
			return nil, ErrAppointmentNotFound
		}
	case entity.RoleIDDoctor:
		if appointment.DoctorID != principalID {
			return nil, ErrAppointmentNotFound
		}
	default:
		return nil, ErrAppointmentNotFound
	}

	return appointment, nil
}

// timeWithinSlots reports whether the minute-of-day falls inside any
// slot's half-open [start, end) interval.
func timeWithinSlots(slots []TimeSlot, minuteOfDay int) bool {
	for _, slot := range slots {
		start, err := parseClock(slot.Start)
		if err != nil {
			continue
		}
		end, err := parseClock(slot.End)
		if err != nil {
			continue
		}
		if minuteOfDay >= start && minuteOfDay < end {
			return true
		}
	}
	return false
}
