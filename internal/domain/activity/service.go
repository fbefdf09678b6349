package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// DefaultLimit is applied when GetRecentActivity is called without one.
	DefaultLimit = 20
	// MaxLimit caps GetRecentActivity.
	MaxLimit = 100
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, now: time.Now, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || strings.TrimSpace(entry.Tool) == "" || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	s.logger.Debug("activity logged", "tool", entry.Tool, "type", entry.ActivityType, "id", entry.ID)
	return nil
}

// GetRecentActivity lists activity entries newest first. The limit
// defaults to DefaultLimit and is capped at MaxLimit.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) (*RecentActivity, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	opts.Limit = min(opts.Limit, MaxLimit)
	opts.ProjectCode = strings.ToUpper(strings.TrimSpace(opts.ProjectCode))

	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	if entries == nil {
		entries = []ActivityEntry{}
	}
	return &RecentActivity{Entries: entries, TotalCount: len(entries)}, nil
}
