package worker

import (
	"sync"
	"testing"
	"time"

	"rebirth_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduleReplacesSameKey(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	var mu sync.Mutex
	fired := []string{}
	record := func(name string) func() {
		return func() {
			mu.Lock()
			fired = append(fired, name)
			mu.Unlock()
		}
	}

	s.Schedule("dev1:daily-checkin", 50*time.Millisecond, record("first"))
	s.Schedule("dev1:daily-checkin", 20*time.Millisecond, record("second"))
	assert.Equal(t, 1, s.Pending())

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second"}, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestCancelStopsTimer(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	fired := make(chan struct{}, 1)
	s.Schedule("dev1:milestone", 30*time.Millisecond, func() { fired <- struct{}{} })
	s.Cancel("dev1:milestone")

	select {
	case <-fired:
		t.Fatal("cancelled timer must not fire")
	case <-time.After(80 * time.Millisecond):
	}
	assert.Equal(t, 0, s.Pending())
}

func TestCancelAll(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	s.Schedule("dev1:daily-checkin", time.Hour, func() {})
	s.Schedule("dev2:daily-checkin", time.Hour, func() {})
	require.Equal(t, 2, s.Pending())

	s.CancelAll()
	assert.Equal(t, 0, s.Pending())
}

func TestNextCheckinFireSameDay(t *testing.T) {
	settings := model.DefaultNotificationSettings()
	settings.CheckinTime = "20:00"
	settings.Timezone = "UTC"

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	fire := NextCheckinFire(settings, now)

	assert.Equal(t, time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), fire)
}

func TestNextCheckinFireRollsToTomorrow(t *testing.T) {
	settings := model.DefaultNotificationSettings()
	settings.CheckinTime = "20:00"
	settings.Timezone = "UTC"

	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	fire := NextCheckinFire(settings, now)

	assert.Equal(t, time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC), fire)
}

func TestNextCheckinFireBadTimeFallsBackToDefault(t *testing.T) {
	settings := model.DefaultNotificationSettings()
	settings.CheckinTime = "25:99"
	settings.Timezone = "UTC"

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	fire := NextCheckinFire(settings, now)

	assert.Equal(t, 20, fire.Hour())
	assert.Equal(t, 0, fire.Minute())
}
