package service

import (
	"context"
	"fmt"
	"math/rand"
	"rebirth_backend/internal/config"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"rebirth_backend/pkg/logger"
	"rebirth_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// WorkerGateway worker 侧的投递通道
// worker 存活时通知交给它展示，这样页面关闭后提醒仍能送达
type WorkerGateway interface {
	Active() bool
	Enqueue(device string, n model.ScheduledNotification) error
	RearmDailyCheckin(device string, settings model.NotificationSettings)
	CancelDailyCheckin(device string)
}

var streakMessages = []string{
	"Keep it up! You're %d days smoke-free! 💪",
	"Amazing progress! %d days of clean air! 🌱",
	"You're doing great! %d days strong! ⭐",
	"Incredible! %d days smoke-free! 🚀",
}

type NotificationService struct {
	State    *repository.StateRepository
	Notifier Notifier
	Cfg      *config.NotificationConfig
	worker   WorkerGateway
	now      func() time.Time
}

func NewNotificationService(state *repository.StateRepository, notifier Notifier, cfg *config.NotificationConfig) *NotificationService {
	return &NotificationService{
		State:    state,
		Notifier: notifier,
		Cfg:      cfg,
		now:      time.Now,
	}
}

// AttachWorker 注入 worker 通道，注册失败时保持 nil 并退回页面内直接展示
func (s *NotificationService) AttachWorker(w WorkerGateway) {
	s.worker = w
}

func (s *NotificationService) Settings(ctx context.Context, device string) model.NotificationSettings {
	return s.State.NotificationSettings(ctx, device)
}

// UpdateSettings 保存偏好并重排每日提醒定时器
// 关闭每日打卡分类会撤掉已上膛的定时器，而不只是停止后续排期
func (s *NotificationService) UpdateSettings(ctx context.Context, device string, settings model.NotificationSettings) error {
	if _, err := parseCheckinTime(settings.CheckinTime); err != nil {
		return err
	}
	if err := s.State.SaveNotificationSettings(ctx, device, settings); err != nil {
		return err
	}
	s.rearm(ctx, device, settings)
	return nil
}

// SetPermission 记录通知权限；授权是显式用户动作，从不隐式发起
func (s *NotificationService) SetPermission(ctx context.Context, device string, granted bool) error {
	if err := s.State.SetPermissionGranted(ctx, device, granted); err != nil {
		return err
	}
	s.rearm(ctx, device, s.State.NotificationSettings(ctx, device))
	return nil
}

func (s *NotificationService) rearm(ctx context.Context, device string, settings model.NotificationSettings) {
	if s.worker == nil || !s.worker.Active() {
		return
	}
	if settings.DailyCheckin && s.State.PermissionGranted(ctx, device) {
		s.worker.RearmDailyCheckin(device, settings)
	} else {
		s.worker.CancelDailyCheckin(device)
	}
}

func (s *NotificationService) Subscribe(ctx context.Context, device string, sub model.PushSubscription) error {
	sub.CreatedAt = s.now()
	return s.State.SavePushSubscription(ctx, device, sub)
}

func (s *NotificationService) Unsubscribe(ctx context.Context, device string) error {
	return s.State.DeletePushSubscription(ctx, device)
}

// BuildPayload 组装通知内容：固定 icon/badge、到达时间戳和 checkin/dismiss 两个动作
func (s *NotificationService) BuildPayload(title, body string, category model.NotificationCategory, requireInteraction bool) model.NotificationPayload {
	icon := s.Cfg.IconPath
	if icon == "" {
		icon = "/Rebirth_icon.png"
	}
	return model.NotificationPayload{
		Title:              title,
		Body:               body,
		Tag:                string(category),
		RequireInteraction: requireInteraction,
		Icon:               icon,
		Badge:              icon,
		DateOfArrival:      s.now().UnixMilli(),
		Actions: []model.NotificationAction{
			{Action: "checkin", Title: "Check In", Icon: icon},
			{Action: "dismiss", Title: "Dismiss", Icon: icon},
		},
	}
}

// Display 展示一条分类通知
// 未授权或分类关闭时静默跳过；worker 存活时优先委托给它
func (s *NotificationService) Display(ctx context.Context, device string, category model.NotificationCategory, title, body string, requireInteraction bool) error {
	if !s.State.PermissionGranted(ctx, device) {
		monitoring.NotificationsSuppressed.WithLabelValues(string(category)).Inc()
		return nil
	}
	if !s.State.NotificationSettings(ctx, device).CategoryEnabled(category) {
		monitoring.NotificationsSuppressed.WithLabelValues(string(category)).Inc()
		return nil
	}

	if s.worker != nil && s.worker.Active() {
		return s.worker.Enqueue(device, model.ScheduledNotification{
			Title:              title,
			Body:               body,
			Tag:                string(category),
			RequireInteraction: requireInteraction,
			Delay:              0,
		})
	}
	return s.DisplayNow(ctx, device, s.BuildPayload(title, body, category, requireInteraction))
}

// DisplayScheduled worker 定时器到点后的回调
// 到点时重新检查权限和分类开关，排期期间用户可能已经关闭
func (s *NotificationService) DisplayScheduled(ctx context.Context, device string, n model.ScheduledNotification) {
	if !s.State.PermissionGranted(ctx, device) {
		monitoring.NotificationsSuppressed.WithLabelValues(n.Tag).Inc()
		return
	}
	category := model.NotificationCategory(n.Tag)
	if model.KnownCategory(n.Tag) && !s.State.NotificationSettings(ctx, device).CategoryEnabled(category) {
		monitoring.NotificationsSuppressed.WithLabelValues(n.Tag).Inc()
		return
	}
	_ = s.DisplayNow(ctx, device, s.BuildPayload(n.Title, n.Body, category, n.RequireInteraction))
}

// DisplayNow 实际投递，没有推送订阅时退回日志替身
func (s *NotificationService) DisplayNow(ctx context.Context, device string, payload model.NotificationPayload) error {
	err := s.Notifier.Show(ctx, device, payload)
	if err == util.ErrNoSubscription {
		err = LogNotifier{}.Show(ctx, device, payload)
	}
	if err != nil {
		logger.Log.Error("notification delivery failed",
			zap.String("device", device), zap.String("tag", payload.Tag), zap.Error(err))
		return err
	}
	monitoring.NotificationsSent.WithLabelValues(payload.Tag).Inc()
	return nil
}

func (s *NotificationService) NotifyMilestone(ctx context.Context, device, milestone string, days int) error {
	body := fmt.Sprintf("Congratulations! You've reached %s - %d days smoke-free!", milestone, days)
	return s.Display(ctx, device, model.CategoryMilestone, "Milestone Achieved! 🎉", body, true)
}

func (s *NotificationService) NotifyStreak(ctx context.Context, device string, days int) error {
	body := fmt.Sprintf(streakMessages[rand.Intn(len(streakMessages))], days)
	return s.Display(ctx, device, model.CategoryStreakReminder, "Streak Reminder", body, false)
}

func (s *NotificationService) NotifyAchievement(ctx context.Context, device, achievement string) error {
	body := fmt.Sprintf("You've unlocked: %s", achievement)
	return s.Display(ctx, device, model.CategoryAchievementUnlock, "New Achievement Unlocked! 🏆", body, true)
}

// parseCheckinTime 校验 HH:MM
func parseCheckinTime(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
