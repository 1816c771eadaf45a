package dto

// ImportWorkRequest: payload for importing a cataloged work
type ImportWorkRequest struct {
	Source string `json:"source" binding:"required"`
	Slug   string `json:"slug" binding:"required"`
}

// ImportBooksRequest: payload for importing popular public-domain books
type ImportBooksRequest struct {
	Language string `json:"language"`
	Limit    int    `json:"limit" binding:"max=100"`
}
