package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"rebirth_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

type displayRecorder struct {
	mu    sync.Mutex
	calls []model.ScheduledNotification
	done  chan struct{}
}

func newDisplayRecorder() *displayRecorder {
	return &displayRecorder{done: make(chan struct{}, 16)}
}

func (r *displayRecorder) display(_ context.Context, _ string, n model.ScheduledNotification) {
	r.mu.Lock()
	r.calls = append(r.calls, n)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *displayRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestWorker(t *testing.T, state *repository.StateRepository) (*Worker, *displayRecorder) {
	t.Helper()
	rec := newDisplayRecorder()
	cache := newTestManager(t, &fakeFetcher{offline: true}, NewMemoryCacheStore())
	return New(cache, state, rec.display, zap.NewNop()), rec
}

func TestWorkerLifecycle(t *testing.T) {
	state := repository.NewStateRepository(repository.NewMemoryKV())
	w, _ := newTestWorker(t, state)

	assert.Equal(t, StateNew, w.Phase())
	assert.False(t, w.Active())

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.True(t, w.Active())
	status := w.Status()
	assert.Equal(t, "active", status["state"])
	assert.Equal(t, "v2.0.0", status["generation"])

	cancel()
	require.Eventually(t, func() bool { return w.Phase() == StateStopped }, time.Second, 10*time.Millisecond)
}

func TestPostRejectedBeforeStart(t *testing.T) {
	state := repository.NewStateRepository(repository.NewMemoryKV())
	w, _ := newTestWorker(t, state)

	err := w.Post(Message{Type: MessageSkipWaiting})
	assert.ErrorIs(t, err, util.ErrWorkerNotRunning)
}

func TestScheduleNotificationImmediateDisplay(t *testing.T) {
	state := repository.NewStateRepository(repository.NewMemoryKV())
	w, rec := newTestWorker(t, state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	err := w.Enqueue("dev1", model.ScheduledNotification{
		Title: "Milestone Achieved! 🎉",
		Tag:   string(model.CategoryMilestone),
	})
	require.NoError(t, err)

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("immediate notification was not displayed")
	}
	assert.Equal(t, 1, rec.count())
}

func TestScheduleNotificationWithDelayArmsTimer(t *testing.T) {
	state := repository.NewStateRepository(repository.NewMemoryKV())
	w, rec := newTestWorker(t, state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	err := w.Enqueue("dev1", model.ScheduledNotification{
		Title: "Streak Reminder",
		Tag:   string(model.CategoryStreakReminder),
		Delay: 30 * time.Millisecond,
	})
	require.NoError(t, err)

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("delayed notification was not displayed")
	}
}

func TestStartRearmsDailyCheckinForKnownDevices(t *testing.T) {
	state := repository.NewStateRepository(repository.NewMemoryKV())
	ctx := context.Background()

	// dev1 已授权且开启每日提醒，dev2 未授权
	require.NoError(t, state.SaveNotificationSettings(ctx, "dev1", model.DefaultNotificationSettings()))
	require.NoError(t, state.SetPermissionGranted(ctx, "dev1", true))
	require.NoError(t, state.SaveNotificationSettings(ctx, "dev2", model.DefaultNotificationSettings()))

	w, _ := newTestWorker(t, state)
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(runCtx)

	assert.Equal(t, 1, w.Status()["pendingTimers"])
}

func TestCancelDailyCheckin(t *testing.T) {
	state := repository.NewStateRepository(repository.NewMemoryKV())
	w, _ := newTestWorker(t, state)

	w.RearmDailyCheckin("dev1", model.DefaultNotificationSettings())
	assert.Equal(t, 1, w.Status()["pendingTimers"])

	w.CancelDailyCheckin("dev1")
	assert.Equal(t, 0, w.Status()["pendingTimers"])
}
