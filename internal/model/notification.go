package model

import "time"

// NotificationCategory 通知分类，同时作为平台通知的固定 tag
// 同一 tag 的重复展示会替换上一条而不是叠加
type NotificationCategory string

const (
	CategoryDailyCheckin      NotificationCategory = "daily-checkin"
	CategoryMilestone         NotificationCategory = "milestone"
	CategoryStreakReminder    NotificationCategory = "streak-reminder"
	CategoryAchievementUnlock NotificationCategory = "achievement"
)

// NotificationSettings 各分类开关与每日提醒时间
// swagger:model NotificationSettings
type NotificationSettings struct {
	DailyCheckin       bool   `json:"dailyCheckin"`
	MilestoneReminders bool   `json:"milestoneReminders"`
	StreakReminders    bool   `json:"streakReminders"`
	AchievementUnlocks bool   `json:"achievementUnlocks"`
	CheckinTime        string `json:"checkinTime"` // HH:MM
	Timezone           string `json:"timezone"`    // IANA 时区名
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		DailyCheckin:       true,
		MilestoneReminders: true,
		StreakReminders:    true,
		AchievementUnlocks: true,
		CheckinTime:        "20:00",
		Timezone:           "Local",
	}
}

// CategoryEnabled 指定分类当前是否开启
func (s NotificationSettings) CategoryEnabled(category NotificationCategory) bool {
	switch category {
	case CategoryDailyCheckin:
		return s.DailyCheckin
	case CategoryMilestone:
		return s.MilestoneReminders
	case CategoryStreakReminder:
		return s.StreakReminders
	case CategoryAchievementUnlock:
		return s.AchievementUnlocks
	}
	return false
}

// KnownCategory tag 是否对应一个可配置的通知分类
func KnownCategory(tag string) bool {
	switch NotificationCategory(tag) {
	case CategoryDailyCheckin, CategoryMilestone, CategoryStreakReminder, CategoryAchievementUnlock:
		return true
	}
	return false
}

// NotificationAction 通知上的动作按钮
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// NotificationPayload 实际展示的通知内容
// 每条通知固定携带 icon/badge、到达时间戳和 checkin/dismiss 两个动作
type NotificationPayload struct {
	Title              string               `json:"title"`
	Body               string               `json:"body"`
	Tag                string               `json:"tag"`
	RequireInteraction bool                 `json:"requireInteraction"`
	Icon               string               `json:"icon"`
	Badge              string               `json:"badge"`
	DateOfArrival      int64                `json:"dateOfArrival"`
	Actions            []NotificationAction `json:"actions"`
}

// ScheduledNotification 延迟展示请求，仅存在于 worker 内存中
// worker 重启会丢失未触发的定时器，这是接受的限制
type ScheduledNotification struct {
	Title              string        `json:"title"`
	Body               string        `json:"body"`
	Tag                string        `json:"tag"`
	RequireInteraction bool          `json:"requireInteraction"`
	Delay              time.Duration `json:"delay"`
}

// PushSubscription 设备注册的 Web Push 订阅
type PushSubscription struct {
	Endpoint   string    `json:"endpoint"`
	P256dhKey  string    `json:"p256dhKey"`
	AuthKey    string    `json:"authKey"`
	DeviceName string    `json:"deviceName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
