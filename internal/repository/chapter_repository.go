package repository

import (
	"context"

	"gorm.io/gorm"

	"storyhub/internal/models"
)

type ChapterRepository interface {
	Create(ctx context.Context, chapter *models.Chapter) error
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
	ListByStory(ctx context.Context, storyID int64) ([]models.Chapter, error)
	FirstByOrder(ctx context.Context, storyID int64) (*models.Chapter, error)
	ExternalIDsByStory(ctx context.Context, storyID int64) (map[string]struct{}, error)
	CountByStory(ctx context.Context, storyID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *chapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ListByStory returns chapters ordered by numeric position, ties broken by
// creation order.
func (r *chapterRepository) ListByStory(ctx context.Context, storyID int64) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := r.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("chapter_order ASC, id ASC").
		Find(&chapters).Error
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) FirstByOrder(ctx context.Context, storyID int64) (*models.Chapter, error) {
	var chapter models.Chapter
	err := r.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("chapter_order ASC, id ASC").
		First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ExternalIDsByStory returns the set of catalog chapter references already
// stored for a story. The importer diffs the catalog listing against this set.
func (r *chapterRepository) ExternalIDsByStory(ctx context.Context, storyID int64) (map[string]struct{}, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Chapter{}).
		Where("story_id = ? AND external_id IS NOT NULL", storyID).
		Pluck("external_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *chapterRepository) CountByStory(ctx context.Context, storyID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Chapter{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}

func (r *chapterRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Chapter{}, id).Error
}
