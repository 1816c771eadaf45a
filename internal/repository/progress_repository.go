package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storyhub/internal/models"
)

type ProgressRepository interface {
	Get(ctx context.Context, userID string, storyID int64) (*models.ReadingHistory, error)
	GetByUser(ctx context.Context, userID string) ([]models.ReadingHistory, error)
	Upsert(ctx context.Context, record *models.ReadingHistory) error
	Delete(ctx context.Context, id int64) error
	DeleteByStory(ctx context.Context, storyID int64) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID string, storyID int64) (*models.ReadingHistory, error) {
	var record models.ReadingHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *progressRepository) GetByUser(ctx context.Context, userID string) ([]models.ReadingHistory, error) {
	var records []models.ReadingHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_read_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert keeps one record per (user, story) pair: update in place when a
// record exists, insert otherwise. Last write wins by timestamp.
func (r *progressRepository) Upsert(ctx context.Context, record *models.ReadingHistory) error {
	var existing models.ReadingHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", record.UserID, record.StoryID).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		if record.LastReadAt.IsZero() {
			record.LastReadAt = time.Now()
		}
		return r.db.WithContext(ctx).Create(record).Error
	} else if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"chapter_id":    record.ChapterID,
		"chapter_title": record.ChapterTitle,
		"last_read_at":  time.Now(),
	}).Error
}

func (r *progressRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.ReadingHistory{}, id).Error
}

func (r *progressRepository) DeleteByStory(ctx context.Context, storyID int64) error {
	return r.db.WithContext(ctx).Where("story_id = ?", storyID).Delete(&models.ReadingHistory{}).Error
}
