package models

import "time"

// ReadingHistory is the authoritative per-account "last position read" record,
// one row per (user, story) pair. Titles and cover are denormalized so the
// history view renders without joins. Derived state: safe to recompute, never
// a source of truth for catalog content.
type ReadingHistory struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_story"`
	StoryID      int64     `json:"story_id" gorm:"not null;uniqueIndex:idx_user_story"`
	StoryTitle   string    `json:"story_title"`
	StoryCover   string    `json:"story_cover"`
	ChapterID    int64     `json:"chapter_id" gorm:"not null"`
	ChapterTitle string    `json:"chapter_title"`
	LastReadAt   time.Time `json:"last_read_at" gorm:"index"`
}

func (ReadingHistory) TableName() string {
	return "reading_history"
}
