package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/workbench/internal/domain/activity"
	"github.com/rpggio/workbench/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		Tool:         "log_time",
		ProjectCode:  "ALPHA",
		ActivityType: activity.TypeTimeLogged,
		Summary:      "Logged 2h",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{ProjectCode: "ALPHA", Limit: activity.DefaultLimit}).
		Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())

	recent, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{ProjectCode: " alpha "})
	require.NoError(t, err)
	require.Equal(t, 1, recent.TotalCount)
	repo.AssertExpectations(t)
}

func TestActivityService_LimitCapped(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, activity.ListActivityOptions{Limit: activity.MaxLimit}).Return(nil, nil)

	svc := activity.NewService(repo, nil)
	recent, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{Limit: 5000})
	require.NoError(t, err)
	require.NotNil(t, recent.Entries)
	require.Zero(t, recent.TotalCount)
	repo.AssertExpectations(t)
}

func TestActivityService_Errors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	require.ErrorIs(t, svc.LogActivity(ctx, nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(ctx, &activity.ActivityEntry{Summary: "x"}), activity.ErrInvalidInput)

	boom := errors.New("disk full")
	repo.On("Log", ctx, mock.Anything).Return(boom)
	err := svc.LogActivity(ctx, &activity.ActivityEntry{Tool: "get_article", ActivityType: activity.TypeToolFailed})
	require.ErrorIs(t, err, boom)
}
