package service

import (
	"context"
	"testing"
	"time"

	"rebirth_backend/internal/config"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	shown []model.NotificationPayload
	err   error
}

func (n *recordingNotifier) Show(_ context.Context, _ string, payload model.NotificationPayload) error {
	if n.err != nil {
		return n.err
	}
	n.shown = append(n.shown, payload)
	return nil
}

func newTestNotificationService(state *repository.StateRepository, notifier Notifier) *NotificationService {
	return NewNotificationService(state, notifier, &config.NotificationConfig{IconPath: "/Rebirth_icon.png"})
}

func TestDisplaySuppressedWithoutPermission(t *testing.T) {
	state := newTestState()
	notifier := &recordingNotifier{}
	svc := newTestNotificationService(state, notifier)

	err := svc.Display(context.Background(), "dev1", model.CategoryMilestone, "Milestone", "30 days", true)
	require.NoError(t, err)
	assert.Empty(t, notifier.shown)
}

func TestDisplayRespectsCategoryToggle(t *testing.T) {
	state := newTestState()
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := newTestNotificationService(state, notifier)

	require.NoError(t, state.SetPermissionGranted(ctx, "dev1", true))
	settings := model.DefaultNotificationSettings()
	settings.MilestoneReminders = false
	require.NoError(t, state.SaveNotificationSettings(ctx, "dev1", settings))

	require.NoError(t, svc.Display(ctx, "dev1", model.CategoryMilestone, "Milestone", "30 days", true))
	assert.Empty(t, notifier.shown)

	require.NoError(t, svc.Display(ctx, "dev1", model.CategoryStreakReminder, "Streak", "7 days", false))
	require.Len(t, notifier.shown, 1)
	assert.Equal(t, string(model.CategoryStreakReminder), notifier.shown[0].Tag)
}

func TestDisplayNowFallsBackToLogWithoutSubscription(t *testing.T) {
	state := newTestState()
	notifier := &recordingNotifier{err: util.ErrNoSubscription}
	svc := newTestNotificationService(state, notifier)

	payload := svc.BuildPayload("Test", "body", model.CategoryDailyCheckin, false)
	assert.NoError(t, svc.DisplayNow(context.Background(), "dev1", payload))
}

func TestBuildPayload(t *testing.T) {
	svc := newTestNotificationService(newTestState(), &recordingNotifier{})
	before := time.Now().UnixMilli()

	payload := svc.BuildPayload("Daily Check-in Reminder", "Don't forget!", model.CategoryDailyCheckin, true)

	assert.Equal(t, "Daily Check-in Reminder", payload.Title)
	assert.Equal(t, string(model.CategoryDailyCheckin), payload.Tag)
	assert.True(t, payload.RequireInteraction)
	assert.Equal(t, "/Rebirth_icon.png", payload.Icon)
	assert.Equal(t, "/Rebirth_icon.png", payload.Badge)
	assert.GreaterOrEqual(t, payload.DateOfArrival, before)

	require.Len(t, payload.Actions, 2)
	assert.Equal(t, "checkin", payload.Actions[0].Action)
	assert.Equal(t, "dismiss", payload.Actions[1].Action)
}

func TestUpdateSettingsValidatesCheckinTime(t *testing.T) {
	svc := newTestNotificationService(newTestState(), &recordingNotifier{})

	settings := model.DefaultNotificationSettings()
	settings.CheckinTime = "9pm"
	assert.Error(t, svc.UpdateSettings(context.Background(), "dev1", settings))

	settings.CheckinTime = "21:30"
	assert.NoError(t, svc.UpdateSettings(context.Background(), "dev1", settings))
	assert.Equal(t, "21:30", svc.Settings(context.Background(), "dev1").CheckinTime)
}

func TestDisplayScheduledReChecksGates(t *testing.T) {
	state := newTestState()
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := newTestNotificationService(state, notifier)

	n := model.ScheduledNotification{Title: "Reminder", Tag: string(model.CategoryDailyCheckin)}

	// 排期后权限被收回：到点不展示
	svc.DisplayScheduled(ctx, "dev1", n)
	assert.Empty(t, notifier.shown)

	require.NoError(t, state.SetPermissionGranted(ctx, "dev1", true))
	svc.DisplayScheduled(ctx, "dev1", n)
	require.Len(t, notifier.shown, 1)

	// 分类被关闭后同样拦下
	settings := model.DefaultNotificationSettings()
	settings.DailyCheckin = false
	require.NoError(t, state.SaveNotificationSettings(ctx, "dev1", settings))
	svc.DisplayScheduled(ctx, "dev1", n)
	assert.Len(t, notifier.shown, 1)
}
