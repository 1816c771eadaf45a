package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storyhub/internal/models"
)

func newReportService(reports *MockReportRepository, comments *MockCommentRepository, replies *MockReplyRepository, users *MockUserRepository, notifications *MockNotificationRepository) ReportService {
	return NewReportService(reports, comments, replies, users, notifications, nil)
}

func pendingReport(id int64) *models.Report {
	return &models.Report{
		ID:           id,
		ReporterID:   "reporter-1",
		TargetType:   models.ReportTargetComment,
		TargetID:     100,
		TargetUserID: "author-1",
		Reason:       "spam",
		Status:       models.ReportStatusPending,
	}
}

func TestFlag_CreatesPendingReportAndNotifiesModerators(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	comments.On("GetByID", mock.Anything, int64(100)).
		Return(&models.Comment{ID: 100, UserID: "author-1"}, nil)
	reports.On("Create", mock.Anything, mock.AnythingOfType("*models.Report")).Return(nil)
	users.On("ModeratorIDs", mock.Anything).Return([]string{"mod-1", "mod-2"}, nil)
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Twice()

	report, err := svc.Flag(context.Background(), Actor{ID: "reporter-1", Name: "Alice"}, models.ReportTargetComment, 100, "spam")
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, "author-1", report.TargetUserID)
	notifications.AssertExpectations(t)
}

func TestFlag_NotificationFailureDoesNotLoseReport(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	comments.On("GetByID", mock.Anything, int64(100)).
		Return(&models.Comment{ID: 100, UserID: "author-1"}, nil)
	reports.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("ModeratorIDs", mock.Anything).Return(nil, errors.New("db down"))

	report, err := svc.Flag(context.Background(), Actor{ID: "reporter-1"}, models.ReportTargetComment, 100, "spam")
	require.NoError(t, err)
	assert.NotNil(t, report)
}

func TestFlag_EmptyReasonRejected(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	_, err := svc.Flag(context.Background(), Actor{ID: "reporter-1"}, models.ReportTargetComment, 100, "   ")
	assert.ErrorIs(t, err, ErrValidation)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolve_DismissLeavesContentAlone(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	resolved := pendingReport(1)
	resolved.Status = models.ReportStatusDismissed
	resolved.Resolution = "Dismissed"

	reports.On("GetByID", mock.Anything, int64(1)).Return(pendingReport(1), nil).Once()
	reports.On("ResolvePending", mock.Anything, int64(1), models.ReportStatusDismissed, "Dismissed", "mod-1", "Mod").
		Return(true, nil)
	reports.On("GetByID", mock.Anything, int64(1)).Return(resolved, nil)

	report, err := svc.Resolve(context.Background(), Actor{ID: "mod-1", Name: "Mod"}, 1, ActionDismiss)
	require.NoError(t, err)
	assert.Equal(t, "Dismissed", report.Resolution)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_DeleteContentRemovesComment(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	resolved := pendingReport(1)
	resolved.Status = models.ReportStatusResolved
	resolved.Resolution = "Content Deleted"

	reports.On("GetByID", mock.Anything, int64(1)).Return(pendingReport(1), nil).Once()
	reports.On("ResolvePending", mock.Anything, int64(1), models.ReportStatusResolved, "Content Deleted", "mod-1", "").
		Return(true, nil)
	comments.On("Delete", mock.Anything, int64(100)).Return(nil)
	reports.On("GetByID", mock.Anything, int64(1)).Return(resolved, nil)

	report, err := svc.Resolve(context.Background(), Actor{ID: "mod-1"}, 1, ActionDeleteContent)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, report.Status)
	comments.AssertExpectations(t)
}

func TestResolve_DeleteContentToleratesAlreadyGone(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	resolved := pendingReport(1)
	resolved.Status = models.ReportStatusResolved

	reports.On("GetByID", mock.Anything, int64(1)).Return(pendingReport(1), nil).Once()
	reports.On("ResolvePending", mock.Anything, int64(1), models.ReportStatusResolved, "Content Deleted", "mod-1", "").
		Return(true, nil)
	comments.On("Delete", mock.Anything, int64(100)).Return(gorm.ErrRecordNotFound)
	reports.On("GetByID", mock.Anything, int64(1)).Return(resolved, nil)

	_, err := svc.Resolve(context.Background(), Actor{ID: "mod-1"}, 1, ActionDeleteContent)
	assert.NoError(t, err)
}

func TestResolve_BanAuthorFlagsUser(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	resolved := pendingReport(1)
	resolved.Status = models.ReportStatusResolved
	resolved.Resolution = "User Banned"

	reports.On("GetByID", mock.Anything, int64(1)).Return(pendingReport(1), nil).Once()
	reports.On("ResolvePending", mock.Anything, int64(1), models.ReportStatusResolved, "User Banned", "mod-1", "").
		Return(true, nil)
	users.On("SetBanned", mock.Anything, "author-1", true).Return(nil)
	reports.On("GetByID", mock.Anything, int64(1)).Return(resolved, nil)

	report, err := svc.Resolve(context.Background(), Actor{ID: "mod-1"}, 1, ActionBanAuthor)
	require.NoError(t, err)
	assert.Equal(t, "User Banned", report.Resolution)
	users.AssertExpectations(t)
}

func TestResolve_SecondResolveGetsAlreadyResolved(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	done := pendingReport(1)
	done.Status = models.ReportStatusResolved
	reports.On("GetByID", mock.Anything, int64(1)).Return(done, nil)

	_, err := svc.Resolve(context.Background(), Actor{ID: "mod-1"}, 1, ActionDismiss)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	reports.AssertNotCalled(t, "ResolvePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_RacingResolveLosesClaim(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	// Pre-check sees pending, but another resolver claims the transition
	// between the read and the update.
	reports.On("GetByID", mock.Anything, int64(1)).Return(pendingReport(1), nil)
	reports.On("ResolvePending", mock.Anything, int64(1), models.ReportStatusResolved, "Content Deleted", "mod-1", "").
		Return(false, nil)

	_, err := svc.Resolve(context.Background(), Actor{ID: "mod-1"}, 1, ActionDeleteContent)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestResolve_UnknownAction(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	reports.On("GetByID", mock.Anything, int64(1)).Return(pendingReport(1), nil)

	_, err := svc.Resolve(context.Background(), Actor{ID: "mod-1"}, 1, "promote")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListByStatus_RejectsUnknownStatus(t *testing.T) {
	reports := new(MockReportRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)
	svc := newReportService(reports, comments, replies, users, notifications)

	_, err := svc.ListByStatus(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrValidation)
}
