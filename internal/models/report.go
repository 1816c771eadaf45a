package models

import "time"

const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

const (
	ReportTargetComment = "comment"
	ReportTargetReply   = "reply"
)

// Report is a moderation queue entry raised against a comment or reply.
// Lifecycle: pending -> resolved|dismissed, exactly once, no re-opening.
type Report struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ReporterID     string     `json:"reporter_id" gorm:"type:uuid;not null;index"`
	ReporterName   string     `json:"reporter_name"`
	TargetType     string     `json:"target_type" gorm:"not null"`
	TargetID       int64      `json:"target_id" gorm:"not null"`
	TargetUserID   string     `json:"target_user_id" gorm:"type:uuid"`
	Reason         string     `json:"reason" gorm:"not null;type:text"`
	Status         string     `json:"status" gorm:"not null;default:'pending';index"`
	Resolution     string     `json:"resolution,omitempty"`
	ResolvedBy     *string    `json:"resolved_by,omitempty" gorm:"type:uuid"`
	ResolvedByName string     `json:"resolved_by_name,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (Report) TableName() string {
	return "reports"
}
