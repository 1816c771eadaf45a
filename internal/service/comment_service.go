package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"storyhub/internal/models"
	"storyhub/internal/moderation"
	"storyhub/internal/repository"
)

type CommentService interface {
	Submit(ctx context.Context, userID, userName string, storyID int64, chapterID *int64, content string) (*models.Comment, error)
	SubmitReply(ctx context.Context, userID, userName string, commentID int64, content string) (*models.Reply, error)
	Update(ctx context.Context, commentID int64, userID, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID int64, userID string, isAdmin bool) error
	DeleteReply(ctx context.Context, replyID int64, userID string, isAdmin bool) error
	GetByStory(ctx context.Context, storyID int64, chapterID *int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentService struct {
	comments repository.CommentRepository
	replies  repository.ReplyRepository
	stories  repository.StoryRepository
}

func NewCommentService(comments repository.CommentRepository, replies repository.ReplyRepository, stories repository.StoryRepository) CommentService {
	return &commentService{
		comments: comments,
		replies:  replies,
		stories:  stories,
	}
}

// Submit runs the deny-list filter over the body and persists the redacted
// text. ChapterID nil posts at the work level; non-nil scopes the comment to
// that chapter.
func (s *commentService) Submit(ctx context.Context, userID, userName string, storyID int64, chapterID *int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment body is empty", ErrValidation)
	}

	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("story not found")
		}
		return nil, err
	}

	comment := &models.Comment{
		StoryID:   storyID,
		ChapterID: chapterID,
		UserID:    userID,
		UserName:  userName,
		Content:   moderation.Filter(content),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) SubmitReply(ctx context.Context, userID, userName string, commentID int64, content string) (*models.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: reply body is empty", ErrValidation)
	}

	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("comment not found")
		}
		return nil, err
	}

	reply := &models.Reply{
		CommentID: commentID,
		UserID:    userID,
		UserName:  userName,
		Content:   moderation.Filter(content),
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *commentService) Update(ctx context.Context, commentID int64, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment body is empty", ErrValidation)
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("comment not found")
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	comment.Content = moderation.Filter(content)
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID int64, userID string, isAdmin bool) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("comment not found")
		}
		return err
	}
	if comment.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *commentService) DeleteReply(ctx context.Context, replyID int64, userID string, isAdmin bool) error {
	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reply not found")
		}
		return err
	}
	if reply.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.replies.Delete(ctx, replyID)
}

func (s *commentService) GetByStory(ctx context.Context, storyID int64, chapterID *int64, page, pageSize int) ([]models.Comment, int64, error) {
	return s.comments.GetByStory(ctx, storyID, chapterID, page, pageSize)
}
