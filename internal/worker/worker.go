package worker

import (
	"context"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"sync/atomic"

	"go.uber.org/zap"
)

// State worker 生命周期
type State int32

const (
	StateNew State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActive
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

type MessageType string

const (
	MessageSkipWaiting          MessageType = "SKIP_WAITING"
	MessageScheduleNotification MessageType = "SCHEDULE_NOTIFICATION"
)

// Message 页面到 worker 的单向命令，没有反向消息
type Message struct {
	Type         MessageType                  `json:"type"`
	Device       string                       `json:"device,omitempty"`
	Notification *model.ScheduledNotification `json:"data,omitempty"`
}

// DisplayFunc 定时器到点或立即展示时的回调，由通知服务提供
type DisplayFunc func(ctx context.Context, device string, n model.ScheduledNotification)

// Worker 离线缓存与通知调度的常驻执行体
// 独立于任何一次请求的生命周期，通过 Message 通道接受命令
type Worker struct {
	Cache *CacheManager

	sched   *Scheduler
	state   *repository.StateRepository
	display DisplayFunc
	msgs    chan Message
	phase   atomic.Int32
	log     *zap.Logger
}

func New(cache *CacheManager, stateRepo *repository.StateRepository, display DisplayFunc, log *zap.Logger) *Worker {
	return &Worker{
		Cache:   cache,
		sched:   NewScheduler(log),
		state:   stateRepo,
		display: display,
		msgs:    make(chan Message, 64),
		log:     log,
	}
}

func (w *Worker) setPhase(s State) {
	w.phase.Store(int32(s))
	w.log.Info("worker state changed", zap.String("state", s.String()))
}

func (w *Worker) Phase() State {
	return State(w.phase.Load())
}

func (w *Worker) Active() bool {
	return w.Phase() == StateActive
}

// Start 走完 install → activate 生命周期后进入消息循环
// 安装阶段的缓存错误只记日志，从不阻塞激活
func (w *Worker) Start(ctx context.Context) {
	w.setPhase(StateInstalling)
	w.Cache.Install(ctx)
	w.setPhase(StateInstalled)

	// 安装完成即请求接管（skipWaiting 语义）
	w.activate(ctx)
	w.rearmAll(ctx)

	go w.run(ctx)
}

func (w *Worker) activate(ctx context.Context) {
	w.setPhase(StateActivating)
	if err := w.Cache.Activate(ctx); err != nil {
		w.log.Error("cache activation failed", zap.Error(err))
	}
	w.setPhase(StateActive)
}

// rearmAll worker 启动时为每个已有偏好的设备重排每日提醒
// 内存定时器不持久化，这里把丢失窗口压到一次重启以内
func (w *Worker) rearmAll(ctx context.Context) {
	for _, device := range w.state.Devices(ctx) {
		settings := w.state.NotificationSettings(ctx, device)
		if settings.DailyCheckin && w.state.PermissionGranted(ctx, device) {
			w.RearmDailyCheckin(device, settings)
		}
	}
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.sched.CancelAll()
			w.setPhase(StateStopped)
			return
		case msg := <-w.msgs:
			w.handleMessage(ctx, msg)
		}
	}
}

// Post 投递一条命令，worker 未运行或队列满时返回错误
func (w *Worker) Post(msg Message) error {
	phase := w.Phase()
	if phase == StateNew || phase == StateStopped {
		return util.ErrWorkerNotRunning
	}
	select {
	case w.msgs <- msg:
		return nil
	default:
		return util.ErrWorkerNotRunning
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg Message) {
	switch msg.Type {
	case MessageSkipWaiting:
		// 空闲等待中的版本立即激活；已激活时是幂等空操作
		if w.Phase() == StateInstalled {
			w.activate(ctx)
		}
	case MessageScheduleNotification:
		if msg.Notification == nil {
			return
		}
		w.scheduleNotification(ctx, msg.Device, *msg.Notification)
	default:
		w.log.Warn("unknown worker message", zap.String("type", string(msg.Type)))
	}
}

func (w *Worker) scheduleNotification(ctx context.Context, device string, n model.ScheduledNotification) {
	if n.Delay <= 0 {
		w.display(ctx, device, n)
		return
	}
	w.sched.Schedule(timerKey(device, n.Tag), n.Delay, func() {
		w.display(context.Background(), device, n)
	})
}

func timerKey(device, tag string) string {
	return device + ":" + tag
}

// Enqueue 通知服务的委托入口
func (w *Worker) Enqueue(device string, n model.ScheduledNotification) error {
	return w.Post(Message{
		Type:         MessageScheduleNotification,
		Device:       device,
		Notification: &n,
	})
}

// RearmDailyCheckin 为设备上膛下一次每日打卡提醒，到点后自动排下一天
func (w *Worker) RearmDailyCheckin(device string, settings model.NotificationSettings) {
	now := w.sched.clock()
	fire := NextCheckinFire(settings, now)
	w.sched.Schedule(timerKey(device, string(model.CategoryDailyCheckin)), fire.Sub(now), func() {
		ctx := context.Background()
		w.display(ctx, device, model.ScheduledNotification{
			Title:              "Daily Check-in Reminder",
			Body:               "Don't forget to check in and maintain your smoke-free streak! 🌟",
			Tag:                string(model.CategoryDailyCheckin),
			RequireInteraction: true,
		})
		// 周期性后台唤醒：展示后立即排下一天
		current := w.state.NotificationSettings(ctx, device)
		if current.DailyCheckin && w.state.PermissionGranted(ctx, device) {
			w.RearmDailyCheckin(device, current)
		}
	})
}

func (w *Worker) CancelDailyCheckin(device string) {
	w.sched.Cancel(timerKey(device, string(model.CategoryDailyCheckin)))
}

// RegisterSync 后台同步注册的能力钩子，只确认不做本地重放
func (w *Worker) RegisterSync(tag string) {
	w.log.Info("sync registration acknowledged", zap.String("tag", tag))
}

// Status 供状态端点读取
func (w *Worker) Status() map[string]interface{} {
	return map[string]interface{}{
		"state":         w.Phase().String(),
		"generation":    w.Cache.Generation().Version,
		"pendingTimers": w.sched.Pending(),
	}
}
