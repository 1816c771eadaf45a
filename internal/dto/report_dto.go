package dto

// FlagRequest: payload for reporting a comment or reply
type FlagRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=comment reply"`
	TargetID   int64  `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=500"`
}

// ResolveReportRequest: payload for acting on a pending report
type ResolveReportRequest struct {
	Action string `json:"action" binding:"required,oneof=dismiss delete_content ban_author"`
}
