package repository

import (
	"context"

	"gorm.io/gorm"

	"storyhub/internal/models"
)

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id int64) (*models.Story, error)
	FindBySourceRef(ctx context.Context, source, slug string) (*models.Story, error)
	List(ctx context.Context, page, pageSize int) ([]models.Story, int64, error)
	Update(ctx context.Context, story *models.Story) error
	DeleteCascade(ctx context.Context, id int64) error
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *storyRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// FindBySourceRef looks a story up by its catalog identity. Titles are not
// unique across catalogs, so (source, slug) is the only dedup key.
func (r *storyRepository) FindBySourceRef(ctx context.Context, source, slug string) (*models.Story, error) {
	var story models.Story
	err := r.db.WithContext(ctx).
		Where("source = ? AND slug = ?", source, slug).
		First(&story).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) List(ctx context.Context, page, pageSize int) ([]models.Story, int64, error) {
	var stories []models.Story
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Story{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&stories).Error
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func (r *storyRepository) Update(ctx context.Context, story *models.Story) error {
	return r.db.WithContext(ctx).Save(story).Error
}

// DeleteCascade removes a story together with its chapters, comments,
// replies, reading-history rows and reports in a single transaction, so no
// orphaned records are left behind.
func (r *storyRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []int64
		if err := tx.Model(&models.Comment{}).
			Where("story_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reply{}).Error; err != nil {
				return err
			}
			if err := tx.Where("target_type = ? AND target_id IN ?", models.ReportTargetComment, commentIDs).
				Delete(&models.Report{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("story_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.ReadingHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("story_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Story{}, id).Error
	})
}
