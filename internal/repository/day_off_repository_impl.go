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

type dayOffRepository struct {
	db *gorm.DB
}

func NewDayOffRepository(db *gorm.DB) domainRepo.DayOffRepository {
	return &dayOffRepository{db: db}
}

func (r *dayOffRepository) Create(ctx context.Context, dayOff *entity.DayOff) error {
	return r.db.WithContext(ctx).Create(dayOff).Error
}

func (r *dayOffRepository) FindByID(ctx context.Context, id int) (*entity.DayOff, error) {
	var dayOff entity.DayOff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dayOff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dayOff, nil
}

func (r *dayOffRepository) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (*entity.DayOff, error) {
	var dayOff entity.DayOff
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		First(&dayOff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dayOff, nil
}

func (r *dayOffRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.DayOff, error) {
	var dayOffs []entity.DayOff
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date ASC").
		Find(&dayOffs).Error
	if err != nil {
		return nil, err
	}
	return dayOffs, nil
}

func (r *dayOffRepository) Delete(ctx context.Context, id int) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DayOff{})
	return result.RowsAffected, result.Error
}
