package dto

type CreateReportRequest struct {
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
	Reason     string `json:"reason"`
}

type BanUserRequest struct {
	Reason string `json:"reason"`
}

// SuspendUserRequest closes only ReportID, when given.
type SuspendUserRequest struct {
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days"`
	ReportID     *int64 `json:"report_id,omitempty"`
}

// ActionResponse reports how many reports a moderation action moved.
type ActionResponse struct {
	Message string `json:"message"`
	Closed  int64  `json:"closed"`
}

type ReportListResponse struct {
	Reports interface{} `json:"reports"`
	Total   int         `json:"total"`
}

type PendingCountResponse struct {
	TargetType string `json:"target_type"`
	TargetID   int64  `json:"target_id"`
	Pending    int64  `json:"pending"`
}

type ThresholdResponse struct {
	TargetType string      `json:"target_type"`
	MinCount   int64       `json:"min_count"`
	Targets    interface{} `json:"targets"`
}

type SanctionResponse struct {
	UserID int64 `json:"user_id"`
	Closed int64 `json:"closed"`
}
