package util

import "errors"

var (
	ErrQuitDateInFuture = errors.New("戒烟日期不能晚于当前时间")
	ErrQuitDateTooOld   = errors.New("戒烟日期不能早于10年前")
	ErrInvalidMood      = errors.New("心情评分必须在1到5之间")
	ErrInvalidEconomics = errors.New("每日吸烟量和单支价格必须为非负数")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrGoalTextEmpty    = errors.New("目标内容不能为空")
	ErrNoSubscription   = errors.New("no push subscription registered")
	ErrPermissionDenied = errors.New("notification permission not granted")
	ErrWorkerNotRunning = errors.New("worker is not running")
	ErrUnknownMessage   = errors.New("unknown worker message type")
	ErrFetchPassThrough = errors.New("request not eligible for cache interception")
	ErrNoCachedResponse = errors.New("no cached response available")
	ErrUnknownFlag      = errors.New("unknown dismissal flag")
)
