package service

import (
	"context"
	"testing"
	"time"

	"rebirth_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInTodayReplacesSameDay(t *testing.T) {
	svc := NewCheckinService(newTestState())
	now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.CheckInToday(context.Background(), "dev1", 3, "rough day")
	require.NoError(t, err)
	record, err := svc.CheckInToday(context.Background(), "dev1", 5, "actually fine")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", record.Date)
	assert.Equal(t, 5, record.Mood)

	today, ok := svc.TodayCheckin(context.Background(), "dev1")
	require.True(t, ok)
	assert.Equal(t, "actually fine", today.Notes)
	assert.Equal(t, 1, svc.Stats(context.Background(), "dev1").TotalCheckins)
}

func TestCheckInTodayRejectsInvalidMood(t *testing.T) {
	svc := NewCheckinService(newTestState())

	_, err := svc.CheckInToday(context.Background(), "dev1", 6, "")
	assert.ErrorIs(t, err, util.ErrInvalidMood)

	// 0 表示未填写心情
	_, err = svc.CheckInToday(context.Background(), "dev1", 0, "")
	assert.NoError(t, err)
}

func TestConsecutiveStreakStopsAtGap(t *testing.T) {
	svc := NewCheckinService(newTestState())
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// 今天、昨天打卡，前天缺口，大前天又有一条
	for _, daysAgo := range []int{3, 1, 0} {
		day := base.AddDate(0, 0, -daysAgo)
		svc.now = func() time.Time { return day }
		_, err := svc.CheckInToday(context.Background(), "dev1", 0, "")
		require.NoError(t, err)
	}

	svc.now = func() time.Time { return base }
	assert.Equal(t, 2, svc.ConsecutiveStreak(context.Background(), "dev1"))
}

func TestConsecutiveStreakZeroWithoutToday(t *testing.T) {
	svc := NewCheckinService(newTestState())
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	yesterday := base.AddDate(0, 0, -1)
	svc.now = func() time.Time { return yesterday }
	_, err := svc.CheckInToday(context.Background(), "dev1", 0, "")
	require.NoError(t, err)

	svc.now = func() time.Time { return base }
	assert.Equal(t, 0, svc.ConsecutiveStreak(context.Background(), "dev1"))
}

func TestRecentWindowFillsMissingDays(t *testing.T) {
	svc := NewCheckinService(newTestState())
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	_, err := svc.CheckInToday(context.Background(), "dev1", 4, "")
	require.NoError(t, err)

	window := svc.RecentWindow(context.Background(), "dev1", 7)
	require.Len(t, window, 7)
	assert.Equal(t, "2026-03-10", window[0].Date)
	assert.True(t, window[0].CheckedIn)
	for _, day := range window[1:] {
		assert.False(t, day.CheckedIn)
	}
}

func TestStatsCheckinRate(t *testing.T) {
	svc := NewCheckinService(newTestState())
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// 最近30天里打卡15天
	for i := 0; i < 15; i++ {
		day := base.AddDate(0, 0, -i)
		svc.now = func() time.Time { return day }
		_, err := svc.CheckInToday(context.Background(), "dev1", 0, "")
		require.NoError(t, err)
	}

	svc.now = func() time.Time { return base }
	stats := svc.Stats(context.Background(), "dev1")
	assert.Equal(t, 15, stats.TotalCheckins)
	assert.Equal(t, 15, stats.Streak)
	assert.Equal(t, 50, stats.CheckinRate)
	assert.Len(t, stats.RecentCheckins, 30)
}
