package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	domainRepo "clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleTemplateRepository struct {
	db *gorm.DB
}

func NewScheduleTemplateRepository(db *gorm.DB) domainRepo.ScheduleTemplateRepository {
	return &scheduleTemplateRepository{db: db}
}

func (r *scheduleTemplateRepository) Create(ctx context.Context, template *entity.ScheduleTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *scheduleTemplateRepository) Update(ctx context.Context, template *entity.ScheduleTemplate) error {
	return r.db.WithContext(ctx).Omit("Doctor").Save(template).Error
}

func (r *scheduleTemplateRepository) FindByID(ctx context.Context, id int) (*entity.ScheduleTemplate, error) {
	var template entity.ScheduleTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *scheduleTemplateRepository) FindRecurring(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*entity.ScheduleTemplate, error) {
	var template entity.ScheduleTemplate
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_recurring = ?", doctorID, dayOfWeek, true).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *scheduleTemplateRepository) FindPinned(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, weekStart time.Time) (*entity.ScheduleTemplate, error) {
	var template entity.ScheduleTemplate
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_recurring = ? AND week_start_date = ?",
			doctorID, dayOfWeek, false, weekStart.Format("2006-01-02")).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *scheduleTemplateRepository) FindForDoctor(ctx context.Context, doctorID uuid.UUID, weekStart time.Time) ([]entity.ScheduleTemplate, error) {
	var templates []entity.ScheduleTemplate
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND (is_recurring = ? OR week_start_date = ?)",
			doctorID, true, weekStart.Format("2006-01-02")).
		Order("week_start_date ASC NULLS FIRST, day_of_week ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *scheduleTemplateRepository) Delete(ctx context.Context, id int) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ScheduleTemplate{})
	return result.RowsAffected, result.Error
}
