package activity

import "time"

// ActivityType classifies an audit log entry.
type ActivityType string

const (
	TypeTimeLogged  ActivityType = "time_logged"
	TypeCapRejected ActivityType = "cap_rejected"
	TypeToolFailed  ActivityType = "tool_failed"
)

// ActivityEntry is one audit log row.
type ActivityEntry struct {
	ID           int64        `json:"id"`
	Tool         string       `json:"tool"`
	ProjectCode  string       `json:"projectCode,omitempty"`
	SessionID    *string      `json:"sessionId,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"createdAt"`
}

// RecentActivity is the result of GetRecentActivity.
type RecentActivity struct {
	Entries    []ActivityEntry `json:"entries"`
	TotalCount int             `json:"totalCount"`
}
