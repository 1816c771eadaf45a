package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storyhub/internal/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	ListByStatus(ctx context.Context, status string) ([]models.Report, error)
	// ResolvePending transitions a report out of pending and returns false if
	// the report was no longer pending, without touching it.
	ResolvePending(ctx context.Context, id int64, status, resolution, actorID, actorName string) (bool, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ResolvePending guards the single-transition invariant at the store: the
// UPDATE is conditioned on status = pending, so a concurrent second resolve
// affects zero rows instead of overwriting the first resolution.
func (r *reportRepository) ResolvePending(ctx context.Context, id int64, status, resolution, actorID, actorName string) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusPending).
		Updates(map[string]any{
			"status":           status,
			"resolution":       resolution,
			"resolved_by":      actorID,
			"resolved_by_name": actorName,
			"resolved_at":      &now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
