package dto

// CreateCommentRequest: payload for posting a comment on a story or chapter
type CreateCommentRequest struct {
	StoryID   int64  `json:"story_id" binding:"required"`
	ChapterID *int64 `json:"chapter_id"`
	Content   string `json:"content" binding:"required,max=2000"`
}

// UpdateCommentRequest: payload for editing an own comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CreateReplyRequest: payload for replying to a comment
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}
