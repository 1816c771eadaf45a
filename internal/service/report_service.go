package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"storyhub/internal/models"
	"storyhub/internal/repository"
)

// Moderation actions a resolver may take on a pending report.
const (
	ActionDismiss       = "dismiss"
	ActionDeleteContent = "delete_content"
	ActionBanAuthor     = "ban_author"
)

// Actor identifies who performed a moderation action, for attribution.
type Actor struct {
	ID   string
	Name string
}

type ReportService interface {
	Flag(ctx context.Context, reporter Actor, targetType string, targetID int64, reason string) (*models.Report, error)
	Resolve(ctx context.Context, actor Actor, reportID int64, action string) (*models.Report, error)
	ListByStatus(ctx context.Context, status string) ([]models.Report, error)
}

type reportService struct {
	reports       repository.ReportRepository
	comments      repository.CommentRepository
	replies       repository.ReplyRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewReportService(
	reports repository.ReportRepository,
	comments repository.CommentRepository,
	replies repository.ReplyRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportService{
		reports:       reports,
		comments:      comments,
		replies:       replies,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// Flag creates a pending report against a comment or reply and notifies every
// moderator. Notification failures are logged, never returned: a missed ping
// must not lose the report.
func (s *reportService) Flag(ctx context.Context, reporter Actor, targetType string, targetID int64, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: report reason is empty", ErrValidation)
	}

	var targetUserID string
	switch targetType {
	case models.ReportTargetComment:
		comment, err := s.comments.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("reported comment not found")
			}
			return nil, err
		}
		targetUserID = comment.UserID
	case models.ReportTargetReply:
		reply, err := s.replies.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("reported reply not found")
			}
			return nil, err
		}
		targetUserID = reply.UserID
	default:
		return nil, fmt.Errorf("%w: unknown target type %q", ErrValidation, targetType)
	}

	report := &models.Report{
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		TargetType:   targetType,
		TargetID:     targetID,
		TargetUserID: targetUserID,
		Reason:       reason,
		Status:       models.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.notifyModerators(ctx, report)
	return report, nil
}

func (s *reportService) notifyModerators(ctx context.Context, report *models.Report) {
	moderatorIDs, err := s.users.ModeratorIDs(ctx)
	if err != nil {
		s.logger.Error("moderator_lookup_failed", "report_id", report.ID, "error", err)
		return
	}
	for _, id := range moderatorIDs {
		notification := &models.Notification{
			UserID:  id,
			Type:    "NEW_REPORT",
			Title:   "New content report",
			Message: fmt.Sprintf("%s reported a %s: %s", report.ReporterName, report.TargetType, report.Reason),
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			s.logger.Error("moderator_notify_failed",
				"report_id", report.ID,
				"moderator_id", id,
				"error", err,
			)
		}
	}
}

// Resolve transitions a pending report exactly once. The transition is
// claimed before any side effect runs, so a racing second resolve gets
// ErrAlreadyResolved instead of repeating the action.
func (s *reportService) Resolve(ctx context.Context, actor Actor, reportID int64, action string) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("report not found")
		}
		return nil, err
	}
	if report.Status != models.ReportStatusPending {
		return nil, ErrAlreadyResolved
	}

	var status, resolution string
	switch action {
	case ActionDismiss:
		status = models.ReportStatusDismissed
		resolution = "Dismissed"
	case ActionDeleteContent:
		status = models.ReportStatusResolved
		resolution = "Content Deleted"
	case ActionBanAuthor:
		status = models.ReportStatusResolved
		resolution = "User Banned"
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	claimed, err := s.reports.ResolvePending(ctx, reportID, status, resolution, actor.ID, actor.Name)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyResolved
	}

	switch action {
	case ActionDeleteContent:
		if report.TargetType == models.ReportTargetReply {
			err = s.replies.Delete(ctx, report.TargetID)
		} else {
			err = s.comments.Delete(ctx, report.TargetID)
		}
		// Already-gone content is fine: the point of the action is reached.
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("report_content_delete_failed",
				"report_id", reportID,
				"target_type", report.TargetType,
				"target_id", report.TargetID,
				"error", err,
			)
			return nil, err
		}
	case ActionBanAuthor:
		if report.TargetUserID == "" {
			return nil, errors.New("report has no target user to ban")
		}
		if err := s.users.SetBanned(ctx, report.TargetUserID, true); err != nil {
			s.logger.Error("report_ban_failed",
				"report_id", reportID,
				"target_user_id", report.TargetUserID,
				"error", err,
			)
			return nil, err
		}
	}

	s.logger.Info("report_resolved",
		"report_id", reportID,
		"action", action,
		"actor_id", actor.ID,
	)
	return s.reports.GetByID(ctx, reportID)
}

func (s *reportService) ListByStatus(ctx context.Context, status string) ([]models.Report, error) {
	switch status {
	case models.ReportStatusPending, models.ReportStatusResolved, models.ReportStatusDismissed:
		return s.reports.ListByStatus(ctx, status)
	default:
		return nil, fmt.Errorf("%w: unknown report status %q", ErrValidation, status)
	}
}
