package models

import "time"

// Story statuses. Imported works only ever use Ongoing/Completed; Draft and
// Published belong to author-written works.
const (
	StoryStatusOngoing   = "Ongoing"
	StoryStatusCompleted = "Completed"
	StoryStatusDraft     = "Draft"
	StoryStatusPublished = "Published"
)

const (
	StoryTypeText  = "text"
	StoryTypeComic = "comic"
)

type Story struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null"`
	Author      string     `json:"author" gorm:"not null"`
	CategoryID  int64      `json:"category_id" gorm:"default:1"`
	Status      string     `json:"status" gorm:"not null;default:'Ongoing'"`
	Type        string     `json:"type" gorm:"not null;default:'text'"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	CoverURL    string     `json:"cover_url,omitempty"`
	OwnerID     *string    `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Source      *string    `json:"source,omitempty" gorm:"index:idx_source_ref"`
	ExternalID  *string    `json:"external_id,omitempty" gorm:"index:idx_source_ref"`
	Slug        *string    `json:"slug,omitempty" gorm:"index;size:200"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	SyncedAt    *time.Time `json:"synced_at,omitempty"`
}

func (Story) TableName() string {
	return "stories"
}

// Imported reports whether the story was materialized from an external
// catalog rather than written locally.
func (s *Story) Imported() bool {
	return s.Source != nil && *s.Source != ""
}
