package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectCode  string
	Tool         string
	SessionID    *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
