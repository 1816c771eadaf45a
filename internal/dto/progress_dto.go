package dto

import "time"

// RecordProgressRequest: payload for saving a reading position
type RecordProgressRequest struct {
	StoryID   int64 `json:"story_id" binding:"required"`
	ChapterID int64 `json:"chapter_id" binding:"required"`
}

// HistoryEntryResponse: one recent reading position
type HistoryEntryResponse struct {
	StoryID      int64     `json:"story_id"`
	StoryTitle   string    `json:"story_title"`
	StoryCover   string    `json:"story_cover"`
	ChapterID    int64     `json:"chapter_id"`
	ChapterTitle string    `json:"chapter_title"`
	LastReadAt   time.Time `json:"last_read_at"`
}

// ClearHistoryResponse: outcome of wiping the reading history
type ClearHistoryResponse struct {
	Deleted int `json:"deleted"`
}
