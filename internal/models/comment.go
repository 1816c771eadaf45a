package models

import "time"

// Comment is reader feedback on a story. ChapterID nil means the comment is
// work-level; non-nil scopes it to a single chapter. The two views never mix.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoryID   int64     `json:"story_id" gorm:"not null;index"`
	ChapterID *int64    `json:"chapter_id,omitempty" gorm:"index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Replies []Reply `json:"replies,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

type Reply struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID int64     `json:"comment_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Reply) TableName() string {
	return "replies"
}
