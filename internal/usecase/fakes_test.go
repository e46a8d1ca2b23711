package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorRepo(doctorIDs ...uuid.UUID) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: make(map[uuid.UUID]*entity.DoctorProfile)}
	for _, id := range doctorIDs {
		r.doctors[id] = &entity.DoctorProfile{
			UserID:         id,
			Specialization: "Cardiology",
			User:           entity.User{ID: id, FullName: "Dr. Test"},
		}
	}
	return r
}

func (r *fakeDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return r.doctors[userID], nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	nextID    int
	templates []*entity.ScheduleTemplate
}

func (r *fakeTemplateRepo) Create(ctx context.Context, template *entity.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	template.ID = r.nextID
	stored := *template
	r.templates = append(r.templates, &stored)
	return nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, template *entity.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.templates {
		if stored.ID == template.ID {
			updated := *template
			r.templates[i] = &updated
			return nil
		}
	}
	return nil
}

func (r *fakeTemplateRepo) FindByID(ctx context.Context, id int) (*entity.ScheduleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.templates {
		if stored.ID == id {
			found := *stored
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindRecurring(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*entity.ScheduleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.templates {
		if stored.DoctorID == doctorID && stored.DayOfWeek == dayOfWeek && stored.IsRecurring {
			found := *stored
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindPinned(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, weekStart time.Time) (*entity.ScheduleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.templates {
		if stored.DoctorID == doctorID && stored.DayOfWeek == dayOfWeek &&
			!stored.IsRecurring && stored.WeekStartDate != nil && sameDay(*stored.WeekStartDate, weekStart) {
			found := *stored
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindForDoctor(ctx context.Context, doctorID uuid.UUID, weekStart time.Time) ([]entity.ScheduleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.ScheduleTemplate
	for _, stored := range r.templates {
		if stored.DoctorID != doctorID {
			continue
		}
		if stored.IsRecurring || (stored.WeekStartDate != nil && sameDay(*stored.WeekStartDate, weekStart)) {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.templates {
		if stored.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeDayOffRepo struct {
	mu      sync.Mutex
	nextID  int
	dayOffs []*entity.DayOff
}

func (r *fakeDayOffRepo) Create(ctx context.Context, dayOff *entity.DayOff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	dayOff.ID = r.nextID
	stored := *dayOff
	r.dayOffs = append(r.dayOffs, &stored)
	return nil
}

func (r *fakeDayOffRepo) FindByID(ctx context.Context, id int) (*entity.DayOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.dayOffs {
		if stored.ID == id {
			found := *stored
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeDayOffRepo) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (*entity.DayOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.dayOffs {
		if stored.DoctorID == doctorID && sameDay(stored.Date, date) {
			found := *stored
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeDayOffRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.DayOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.DayOff
	for _, stored := range r.dayOffs {
		if stored.DoctorID == doctorID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeDayOffRepo) Delete(ctx context.Context, id int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.dayOffs {
		if stored.ID == id {
			r.dayOffs = append(r.dayOffs[:i], r.dayOffs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeAppointmentRepo mimics the active-slot unique index: Create fails
// with ErrSlotTaken when a pending/confirmed appointment already holds
// the slot.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.appointments {
		if stored.DoctorID == appointment.DoctorID && stored.IsActive() &&
			sameDay(stored.AppointmentDate, appointment.AppointmentDate) &&
			stored.AppointmentTime == appointment.AppointmentTime {
			return repository.ErrSlotTaken
		}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	r.appointments[stored.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (r *fakeAppointmentRepo) FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.appointments {
		if stored.DoctorID == doctorID && stored.IsActive() &&
			sameDay(stored.AppointmentDate, date) && stored.AppointmentTime == timeOfDay {
			found := *stored
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindActiveByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, stored := range r.appointments {
		if stored.DoctorID == doctorID && stored.IsActive() && sameDay(stored.AppointmentDate, date) {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, stored := range r.appointments {
		if stored.PatientID == patientID && matchesFilter(stored, filter) {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, stored := range r.appointments {
		if stored.DoctorID == doctorID && matchesFilter(stored, filter) {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func matchesFilter(appointment *entity.Appointment, filter *entity.AppointmentFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Status != "" && appointment.Status != filter.Status {
		return false
	}
	if filter.Date != nil && !sameDay(appointment.AppointmentDate, *filter.Date) {
		return false
	}
	return true
}

func (r *fakeAppointmentRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, fromStatuses []entity.AppointmentStatus, toStatus entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[id]
	if !ok {
		return 0, nil
	}
	for _, from := range fromStatuses {
		if stored.Status == from {
			stored.Status = toStatus
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAppointmentRepo) UpdateNotes(ctx context.Context, appointment *entity.Appointment, fields []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[appointment.ID]
	if !ok {
		return nil
	}
	for _, field := range fields {
		switch field {
		case "notes":
			stored.Notes = appointment.Notes
		case "doctor_notes":
			stored.DoctorNotes = appointment.DoctorNotes
		}
	}
	return nil
}

// fakeSlotLocker has SETNX semantics: Acquire fails while another
// holder owns the key.
type fakeSlotLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeSlotLocker() *fakeSlotLocker {
	return &fakeSlotLocker{held: make(map[string]bool)}
}

func (l *fakeSlotLocker) key(doctorID uuid.UUID, date time.Time, timeOfDay string) string {
	return doctorID.String() + ":" + date.Format("2006-01-02") + ":" + timeOfDay
}

func (l *fakeSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := l.key(doctorID, date, timeOfDay)
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeSlotLocker) Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, l.key(doctorID, date, timeOfDay))
	return nil
}

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}
