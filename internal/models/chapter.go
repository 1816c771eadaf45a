package models

import "time"

// Chapter is a single unit of a story. For comic stories Content is empty and
// ExternalID references the catalog endpoint that serves the page images.
type Chapter struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoryID    int64     `json:"story_id" gorm:"not null;index:idx_story_order"`
	Title      string    `json:"title" gorm:"not null"`
	Order      float64   `json:"order" gorm:"column:chapter_order;not null;index:idx_story_order"`
	Content    string    `json:"content" gorm:"type:text"`
	ExternalID *string   `json:"external_id,omitempty" gorm:"index"`
	Source     *string   `json:"source,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
