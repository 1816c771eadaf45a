package dto

// CreateStoryRequest: payload for creating an original story
type CreateStoryRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Author      string `json:"author" binding:"required,max=255"`
	Type        string `json:"type" binding:"omitempty,oneof=text comic"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
}

// UpdateStoryRequest: payload for editing a story
type UpdateStoryRequest struct {
	Title       string `json:"title" binding:"omitempty,max=255"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	Status      string `json:"status" binding:"omitempty,oneof=Ongoing Completed Draft Published"`
}

// PaginatedResponse wraps list endpoints with their total count
type PaginatedResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
