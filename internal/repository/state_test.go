package repository

import (
	"context"
	"testing"
	"time"

	"rebirth_backend/internal/model"
	"rebirth_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

func TestStateDefaultsWhenEmpty(t *testing.T) {
	repo := NewStateRepository(NewMemoryKV())
	ctx := context.Background()

	_, ok := repo.QuitDate(ctx, "dev1")
	assert.False(t, ok)

	assert.Equal(t, model.DefaultEconomics(), repo.Economics(ctx, "dev1"))
	assert.Equal(t, model.DefaultNotificationSettings(), repo.NotificationSettings(ctx, "dev1"))
	assert.Empty(t, repo.Checkins(ctx, "dev1"))
	assert.Empty(t, repo.Goals(ctx, "dev1"))
	assert.Equal(t, "", repo.UserName(ctx, "dev1"))
	assert.False(t, repo.PermissionGranted(ctx, "dev1"))
	assert.False(t, repo.Flag(ctx, "dev1", "welcome-banner-dismissed"))

	_, ok = repo.PushSubscription(ctx, "dev1")
	assert.False(t, ok)
}

func TestStateToleratesMalformedValues(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewStateRepository(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "rebirth:dev1:custom_stats", "{not json"))
	require.NoError(t, kv.Set(ctx, "rebirth:dev1:quit_date", "yesterday-ish"))

	assert.Equal(t, model.DefaultEconomics(), repo.Economics(ctx, "dev1"))
	_, ok := repo.QuitDate(ctx, "dev1")
	assert.False(t, ok)
}

func TestQuitDateRoundTrip(t *testing.T) {
	repo := NewStateRepository(NewMemoryKV())
	ctx := context.Background()
	quit := time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)

	require.NoError(t, repo.SetQuitDate(ctx, "dev1", quit))

	got, ok := repo.QuitDate(ctx, "dev1")
	require.True(t, ok)
	assert.True(t, got.Equal(quit))
}

func TestUserNameEmptyClears(t *testing.T) {
	repo := NewStateRepository(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, repo.SetUserName(ctx, "dev1", "Alex"))
	assert.Equal(t, "Alex", repo.UserName(ctx, "dev1"))

	require.NoError(t, repo.SetUserName(ctx, "dev1", ""))
	assert.Equal(t, "", repo.UserName(ctx, "dev1"))
}

func TestPermissionGrantedLifecycle(t *testing.T) {
	repo := NewStateRepository(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, repo.SetPermissionGranted(ctx, "dev1", true))
	assert.True(t, repo.PermissionGranted(ctx, "dev1"))

	require.NoError(t, repo.SetPermissionGranted(ctx, "dev1", false))
	assert.False(t, repo.PermissionGranted(ctx, "dev1"))
}

func TestDevicesEnumeration(t *testing.T) {
	repo := NewStateRepository(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, repo.SetUserName(ctx, "zeta", "Z"))
	require.NoError(t, repo.SetFlag(ctx, "alpha", "welcome-banner-dismissed", true))
	require.NoError(t, repo.SetQuitDate(ctx, "alpha", time.Now()))

	assert.Equal(t, []string{"alpha", "zeta"}, repo.Devices(ctx))
}

func TestResetScopedToDevice(t *testing.T) {
	repo := NewStateRepository(NewMemoryKV())
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveCheckins(ctx, "dev1", []model.Checkin{{Date: "2026-03-31", CheckedIn: true}}))
	require.NoError(t, repo.SaveGoals(ctx, "dev1", []model.Goal{{ID: "g1", Text: "Run 5k"}}))
	require.NoError(t, repo.SetFlag(ctx, "dev1", "streak-notification-dismissed", true))
	require.NoError(t, repo.SetUserName(ctx, "dev1", "Alex"))
	require.NoError(t, repo.SaveCheckins(ctx, "dev2", []model.Checkin{{Date: "2026-03-31", CheckedIn: true}}))

	require.NoError(t, repo.Reset(ctx, "dev1", now))

	assert.Empty(t, repo.Checkins(ctx, "dev1"))
	assert.Empty(t, repo.Goals(ctx, "dev1"))
	assert.False(t, repo.Flag(ctx, "dev1", "streak-notification-dismissed"))

	// 名称和其他设备的数据不受影响
	assert.Equal(t, "Alex", repo.UserName(ctx, "dev1"))
	assert.Len(t, repo.Checkins(ctx, "dev2"), 1)

	quit, ok := repo.QuitDate(ctx, "dev1")
	require.True(t, ok)
	assert.True(t, quit.Equal(now))
}
