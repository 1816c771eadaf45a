package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storyhub/internal/models"
)

func newCommentService(comments *MockCommentRepository, replies *MockReplyRepository, stories *MockStoryRepository) CommentService {
	return NewCommentService(comments, replies, stories)
}

func TestSubmit_FiltersDenyListedWords(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	stories.On("GetByID", mock.Anything, int64(1)).Return(&models.Story{ID: 1}, nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := svc.Submit(context.Background(), "user-1", "Alice", 1, nil, "this dm is bad")
	require.NoError(t, err)
	assert.Equal(t, "this ** is bad", comment.Content)
}

func TestSubmit_EmptyContentRejected(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	_, err := svc.Submit(context.Background(), "user-1", "Alice", 1, nil, "   ")
	assert.ErrorIs(t, err, ErrValidation)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_StoryMustExist(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	stories.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Submit(context.Background(), "user-1", "Alice", 9, nil, "hello")
	assert.Error(t, err)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_ChapterScopeIsKept(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	stories.On("GetByID", mock.Anything, int64(1)).Return(&models.Story{ID: 1}, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ChapterID != nil && *c.ChapterID == 7
	})).Return(nil)

	chapterID := int64(7)
	comment, err := svc.Submit(context.Background(), "user-1", "Alice", 1, &chapterID, "nice chapter")
	require.NoError(t, err)
	require.NotNil(t, comment.ChapterID)
	assert.Equal(t, int64(7), *comment.ChapterID)
}

func TestSubmitReply_FiltersAndRequiresParent(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	comments.On("GetByID", mock.Anything, int64(3)).Return(&models.Comment{ID: 3}, nil)
	replies.On("Create", mock.Anything, mock.AnythingOfType("*models.Reply")).Return(nil)

	reply, err := svc.SubmitReply(context.Background(), "user-1", "Alice", 3, "what the fuck")
	require.NoError(t, err)
	assert.Equal(t, "what the ****", reply.Content)
}

func TestUpdate_OnlyAuthorMayEdit(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	comments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Comment{ID: 3, UserID: "someone-else", Content: "original"}, nil)

	_, err := svc.Update(context.Background(), 3, "user-1", "edited")
	assert.ErrorIs(t, err, ErrForbidden)
	comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_RefiltersEditedContent(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	comments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Comment{ID: 3, UserID: "user-1", Content: "original"}, nil)
	comments.On("Update", mock.Anything, mock.Anything).Return(nil)

	comment, err := svc.Update(context.Background(), 3, "user-1", "now with shit in it")
	require.NoError(t, err)
	assert.Equal(t, "now with **** in it", comment.Content)
}

func TestDelete_AdminMayDeleteAnyComment(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	comments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Comment{ID: 3, UserID: "someone-else"}, nil)
	comments.On("Delete", mock.Anything, int64(3)).Return(nil)

	err := svc.Delete(context.Background(), 3, "admin-1", true)
	assert.NoError(t, err)
	comments.AssertExpectations(t)
}

func TestDelete_StrangerForbidden(t *testing.T) {
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	stories := new(MockStoryRepository)
	svc := newCommentService(comments, replies, stories)

	comments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Comment{ID: 3, UserID: "someone-else"}, nil)

	err := svc.Delete(context.Background(), 3, "user-1", false)
	assert.ErrorIs(t, err, ErrForbidden)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
