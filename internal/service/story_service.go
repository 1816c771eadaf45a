package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"storyhub/internal/models"
	"storyhub/internal/repository"
)

type StoryService interface {
	Get(ctx context.Context, id int64) (*models.Story, error)
	List(ctx context.Context, page, pageSize int) ([]models.Story, int64, error)
	Create(ctx context.Context, story *models.Story) error
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id int64) error
	ListChapters(ctx context.Context, storyID int64) ([]models.Chapter, error)
	GetChapter(ctx context.Context, chapterID int64) (*models.Chapter, error)
}

type storyService struct {
	stories  repository.StoryRepository
	chapters repository.ChapterRepository
}

func NewStoryService(stories repository.StoryRepository, chapters repository.ChapterRepository) StoryService {
	return &storyService{stories: stories, chapters: chapters}
}

func (s *storyService) Get(ctx context.Context, id int64) (*models.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("story not found")
		}
		return nil, err
	}
	return story, nil
}

func (s *storyService) List(ctx context.Context, page, pageSize int) ([]models.Story, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.stories.List(ctx, page, pageSize)
}

func (s *storyService) Create(ctx context.Context, story *models.Story) error {
	if strings.TrimSpace(story.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(story.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrValidation)
	}
	return s.stories.Create(ctx, story)
}

func (s *storyService) Update(ctx context.Context, story *models.Story) error {
	return s.stories.Update(ctx, story)
}

// Delete removes a story and everything hanging off it. Chapters, comments,
// history and reports cascade so no orphaned records survive the work.
func (s *storyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.stories.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("story not found")
		}
		return err
	}
	return s.stories.DeleteCascade(ctx, id)
}

func (s *storyService) ListChapters(ctx context.Context, storyID int64) ([]models.Chapter, error) {
	return s.chapters.ListByStory(ctx, storyID)
}

func (s *storyService) GetChapter(ctx context.Context, chapterID int64) (*models.Chapter, error) {
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("chapter not found")
		}
		return nil, err
	}
	return chapter, nil
}
