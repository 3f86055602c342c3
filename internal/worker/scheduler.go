package worker

import (
	"rebirth_backend/internal/model"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler worker 内存中的定时器表
// 定时器不落盘：worker 重启会丢掉未触发的提醒，启动时按偏好重排
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	clock  func() time.Time
	log    *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{
		timers: make(map[string]*time.Timer),
		clock:  time.Now,
		log:    log,
	}
}

// Schedule 为 key 上膛一个一次性定时器
// 同 key 的旧定时器会被撤掉再换新，和平台通知的同 tag 替换语义一致
func (s *Scheduler) Schedule(key string, delay time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[key]; ok {
		old.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		fire()
	})
	s.log.Debug("notification timer armed", zap.String("key", key), zap.Duration("delay", delay))
}

func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

// Pending 当前上膛的定时器数量
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// NextCheckinFire 下一个每日打卡提醒时刻
// 今天的 HH:MM 还没过就用今天，否则排到明天；时区取偏好中的IANA名
func NextCheckinFire(settings model.NotificationSettings, now time.Time) time.Time {
	loc := time.Local
	if settings.Timezone != "" && settings.Timezone != "Local" {
		if l, err := time.LoadLocation(settings.Timezone); err == nil {
			loc = l
		}
	}

	t, err := time.Parse("15:04", settings.CheckinTime)
	if err != nil {
		t, _ = time.Parse("15:04", "20:00")
	}

	local := now.In(loc)
	fire := time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}
