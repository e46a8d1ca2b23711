package usecase

import (
	"context"
	"errors"
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
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrTemplateNotFound  = errors.New("schedule template not found")
	ErrDayOffNotFound    = errors.New("day off not found")
	ErrInvalidDayOffDate = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidWeekStart  = errors.New("invalid week start date format, use YYYY-MM-DD")
)

type ScheduleUsecase interface {
	// UpsertTemplate creates or replaces the doctor's template for the
	// (weekday, recurring|pinned-week) key.
	UpsertTemplate(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertScheduleTemplateRequest) (*dto.ScheduleTemplateResponse, error)
	// ListTemplates returns the doctor's recurring templates plus those
	// pinned to the current week.
	ListTemplates(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleTemplateListResponse, error)
	DeleteTemplate(ctx context.Context, doctorID uuid.UUID, templateID int) error
	// AddDayOff is idempotent per (doctor, date): adding an existing
	// day off returns the stored entry unchanged.
	AddDayOff(ctx context.Context, doctorID uuid.UUID, req *dto.AddDayOffRequest) (*dto.DayOffResponse, error)
	ListDayOffs(ctx context.Context, doctorID uuid.UUID) (*dto.DayOffListResponse, error)
	DeleteDayOff(ctx context.Context, doctorID uuid.UUID, dayOffID int) error
}

type scheduleUsecase struct {
	log          *logrus.Logger
	templateRepo repository.ScheduleTemplateRepository
	dayOffRepo   repository.DayOffRepository
	audit        service.AuditService
	now          func() time.Time
}

func NewScheduleUsecase(
	log *logrus.Logger,
	templateRepo repository.ScheduleTemplateRepository,
	dayOffRepo repository.DayOffRepository,
	audit service.AuditService,
) ScheduleUsecase {
	return &scheduleUsecase{
		log:          log,
		templateRepo: templateRepo,
		dayOffRepo:   dayOffRepo,
		audit:        audit,
		now:          time.Now,
	}
}

func (u *scheduleUsecase) UpsertTemplate(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertScheduleTemplateRequest) (*dto.ScheduleTemplateResponse, error) {
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidAppointmentTime
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidAppointmentTime
	}
	if *req.IsWorkingDay && start >= end {
		return nil, ErrInvalidTimeRange
	}

	var weekStart *time.Time
	if !req.IsRecurring {
		// pinned templates are anchored to a Monday; any submitted date
		// is normalized to its week's Monday, defaulting to this week
		anchor := u.now()
		if req.WeekStartDate != "" {
			anchor, err = time.Parse("2006-01-02", req.WeekStartDate)
			if err != nil {
				return nil, ErrInvalidWeekStart
			}
		}
		monday := entity.WeekStartOf(anchor)
		weekStart = &monday
	}

	existing, err := u.findTemplateForKey(ctx, doctorID, *req.DayOfWeek, req.IsRecurring, weekStart)
	if err != nil {
		u.log.Warnf("Failed to look up template for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	template := existing
	if template == nil {
		template = &entity.ScheduleTemplate{
			DoctorID:  doctorID,
			DayOfWeek: *req.DayOfWeek,
		}
	}
	template.StartTime = formatClock(start)
	template.EndTime = formatClock(end)
	template.IsWorkingDay = *req.IsWorkingDay
	template.SlotDuration = req.SlotDuration
	template.IsRecurring = req.IsRecurring
	template.WeekStartDate = weekStart

	if existing == nil {
		err = u.templateRepo.Create(ctx, template)
	} else {
		err = u.templateRepo.Update(ctx, template)
	}
	if err != nil {
		u.log.Warnf("Failed to upsert template for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.audit.Record(ctx, &doctorID, entity.AuditActionTemplateUpsert, entity.JSON{
		"template_id": template.ID,
		"day_of_week": template.DayOfWeek,
		"recurring":   template.IsRecurring,
	})

	return converter.TemplateToResponse(template), nil
}

func (u *scheduleUsecase) findTemplateForKey(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, recurring bool, weekStart *time.Time) (*entity.ScheduleTemplate, error) {
	if recurring {
		return u.templateRepo.FindRecurring(ctx, doctorID, dayOfWeek)
	}
	return u.templateRepo.FindPinned(ctx, doctorID, dayOfWeek, *weekStart)
}

func (u *scheduleUsecase) ListTemplates(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleTemplateListResponse, error) {
	templates, err := u.templateRepo.FindForDoctor(ctx, doctorID, entity.WeekStartOf(u.now()))
	if err != nil {
		u.log.Warnf("Failed to list templates for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ScheduleTemplateListResponse{
		Templates: converter.TemplatesToResponses(templates),
		Total:     len(templates),
	}, nil
}

func (u *scheduleUsecase) DeleteTemplate(ctx context.Context, doctorID uuid.UUID, templateID int) error {
	template, err := u.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		u.log.Warnf("Failed to find template %d: %+v", templateID, err)
		return err
	}
	if template == nil || template.DoctorID != doctorID {
		return ErrTemplateNotFound
	}

	affected, err := u.templateRepo.Delete(ctx, templateID)
	if err != nil {
		u.log.Warnf("Failed to delete template %d: %+v", templateID, err)
		return err
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}

	u.audit.Record(ctx, &doctorID, entity.AuditActionTemplateDelete, entity.JSON{
		"template_id": templateID,
	})
	return nil
}

func (u *scheduleUsecase) AddDayOff(ctx context.Context, doctorID uuid.UUID, req *dto.AddDayOffRequest) (*dto.DayOffResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDayOffDate
	}

	existing, err := u.dayOffRepo.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to look up day off for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if existing != nil {
		return converter.DayOffToResponse(existing), nil
	}

	dayOff := &entity.DayOff{
		DoctorID: doctorID,
		Date:     date,
		Reason:   req.Reason,
	}
	if err := u.dayOffRepo.Create(ctx, dayOff); err != nil {
		u.log.Warnf("Failed to add day off for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.audit.Record(ctx, &doctorID, entity.AuditActionDayOffAdd, entity.JSON{
		"day_off_id": dayOff.ID,
		"date":       req.Date,
	})

	return converter.DayOffToResponse(dayOff), nil
}

func (u *scheduleUsecase) ListDayOffs(ctx context.Context, doctorID uuid.UUID) (*dto.DayOffListResponse, error) {
	dayOffs, err := u.dayOffRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list day offs for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.DayOffListResponse{
		DayOffs: converter.DayOffsToResponses(dayOffs),
		Total:   len(dayOffs),
	}, nil
}

func (u *scheduleUsecase) DeleteDayOff(ctx context.Context, doctorID uuid.UUID, dayOffID int) error {
	dayOff, err := u.dayOffRepo.FindByID(ctx, dayOffID)
	if err != nil {
		u.log.Warnf("Failed to find day off %d: %+v", dayOffID, err)
		return err
	}
	if dayOff == nil || dayOff.DoctorID != doctorID {
		return ErrDayOffNotFound
	}

	affected, err := u.dayOffRepo.Delete(ctx, dayOffID)
	if err != nil {
		u.log.Warnf("Failed to delete day off %d: %+v", dayOffID, err)
		return err
	}
	if affected == 0 {
		return ErrDayOffNotFound
	}

	u.audit.Record(ctx, &doctorID, entity.AuditActionDayOffDelete, entity.JSON{
		"day_off_id": dayOffID,
	})
	return nil
}
