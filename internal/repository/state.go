package repository

import (
	"context"
	"encoding/json"
	"rebirth_backend/internal/model"
	"rebirth_backend/pkg/logger"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// 每种记录占用一个逻辑键，值独立序列化
const (
	keyQuitDate     = "quit_date"
	keyUserName     = "user_name"
	keyCustomStats  = "custom_stats"
	keyCheckins     = "daily_checkins"
	keyNotification = "notification_settings"
	keyGoals        = "goals"
	keySubscription = "push_subscription"
	keyPermission   = "notification_permission"
	flagPrefix      = "flag:"
)

// StateRepository 设备维度的持久状态层
// 读路径对缺失键和脏数据一律回退默认值并记日志，从不向调用方抛错；
// 写路径同步落盘，错误原样返回
type StateRepository struct {
	kv KV
}

func NewStateRepository(kv KV) *StateRepository {
	return &StateRepository{kv: kv}
}

func deviceKey(device, key string) string {
	return "rebirth:" + device + ":" + key
}

// getJSON 反序列化失败时返回 false，调用方应用默认值
func (r *StateRepository) getJSON(ctx context.Context, device, key string, out interface{}) bool {
	raw, err := r.kv.Get(ctx, deviceKey(device, key))
	if err != nil {
		if err != ErrKeyNotFound {
			logger.Log.Warn("state read failed, using default",
				zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Log.Warn("state value malformed, using default",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *StateRepository) setJSON(ctx context.Context, device, key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, deviceKey(device, key), string(raw))
}

// QuitDate 返回戒烟时刻，第二个返回值表示该键是否已初始化
func (r *StateRepository) QuitDate(ctx context.Context, device string) (time.Time, bool) {
	raw, err := r.kv.Get(ctx, deviceKey(device, keyQuitDate))
	if err != nil {
		if err != ErrKeyNotFound {
			logger.Log.Warn("quit date read failed", zap.Error(err))
		}
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		logger.Log.Warn("quit date malformed, reinitializing", zap.String("value", raw))
		return time.Time{}, false
	}
	return t, true
}

func (r *StateRepository) SetQuitDate(ctx context.Context, device string, t time.Time) error {
	return r.kv.Set(ctx, deviceKey(device, keyQuitDate), t.Format(time.RFC3339))
}

func (r *StateRepository) UserName(ctx context.Context, device string) string {
	raw, err := r.kv.Get(ctx, deviceKey(device, keyUserName))
	if err != nil {
		return ""
	}
	return raw
}

// SetUserName 空字符串等价于删除该键
func (r *StateRepository) SetUserName(ctx context.Context, device, name string) error {
	if name == "" {
		return r.kv.Delete(ctx, deviceKey(device, keyUserName))
	}
	return r.kv.Set(ctx, deviceKey(device, keyUserName), name)
}

func (r *StateRepository) Economics(ctx context.Context, device string) model.CustomEconomics {
	eco := model.DefaultEconomics()
	r.getJSON(ctx, device, keyCustomStats, &eco)
	return eco
}

func (r *StateRepository) SaveEconomics(ctx context.Context, device string, eco model.CustomEconomics) error {
	return r.setJSON(ctx, device, keyCustomStats, eco)
}

func (r *StateRepository) Checkins(ctx context.Context, device string) []model.Checkin {
	var checkins []model.Checkin
	r.getJSON(ctx, device, keyCheckins, &checkins)
	return checkins
}

func (r *StateRepository) SaveCheckins(ctx context.Context, device string, checkins []model.Checkin) error {
	return r.setJSON(ctx, device, keyCheckins, checkins)
}

func (r *StateRepository) NotificationSettings(ctx context.Context, device string) model.NotificationSettings {
	settings := model.DefaultNotificationSettings()
	r.getJSON(ctx, device, keyNotification, &settings)
	return settings
}

func (r *StateRepository) SaveNotificationSettings(ctx context.Context, device string, s model.NotificationSettings) error {
	return r.setJSON(ctx, device, keyNotification, s)
}

func (r *StateRepository) Goals(ctx context.Context, device string) []model.Goal {
	var goals []model.Goal
	r.getJSON(ctx, device, keyGoals, &goals)
	return goals
}

func (r *StateRepository) SaveGoals(ctx context.Context, device string, goals []model.Goal) error {
	return r.setJSON(ctx, device, keyGoals, goals)
}

func (r *StateRepository) PushSubscription(ctx context.Context, device string) (model.PushSubscription, bool) {
	var sub model.PushSubscription
	ok := r.getJSON(ctx, device, keySubscription, &sub)
	return sub, ok && sub.Endpoint != ""
}

func (r *StateRepository) SavePushSubscription(ctx context.Context, device string, sub model.PushSubscription) error {
	return r.setJSON(ctx, device, keySubscription, sub)
}

func (r *StateRepository) DeletePushSubscription(ctx context.Context, device string) error {
	return r.kv.Delete(ctx, deviceKey(device, keySubscription))
}

// PermissionGranted 通知权限，默认未授予
func (r *StateRepository) PermissionGranted(ctx context.Context, device string) bool {
	raw, err := r.kv.Get(ctx, deviceKey(device, keyPermission))
	return err == nil && raw == "granted"
}

func (r *StateRepository) SetPermissionGranted(ctx context.Context, device string, granted bool) error {
	if !granted {
		return r.kv.Delete(ctx, deviceKey(device, keyPermission))
	}
	return r.kv.Set(ctx, deviceKey(device, keyPermission), "granted")
}

// Flag 一次性UI标记，只看键是否存在
func (r *StateRepository) Flag(ctx context.Context, device, name string) bool {
	_, err := r.kv.Get(ctx, deviceKey(device, flagPrefix+name))
	return err == nil
}

func (r *StateRepository) SetFlag(ctx context.Context, device, name string, set bool) error {
	key := deviceKey(device, flagPrefix+name)
	if !set {
		return r.kv.Delete(ctx, key)
	}
	return r.kv.Set(ctx, key, "1")
}

// Devices 枚举当前存有状态的设备ID，worker 启动时据此重排每日提醒
func (r *StateRepository) Devices(ctx context.Context) []string {
	keys, err := r.kv.Keys(ctx, "rebirth:")
	if err != nil {
		logger.Log.Warn("failed to enumerate devices", zap.Error(err))
		return nil
	}

	seen := make(map[string]bool)
	var devices []string
	for _, key := range keys {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) < 3 || parts[1] == "" || seen[parts[1]] {
			continue
		}
		seen[parts[1]] = true
		devices = append(devices, parts[1])
	}
	sort.Strings(devices)
	return devices
}

// Reset 清空打卡、目标和标记后重置戒烟时刻
// 先清数据再写新的戒烟时刻：中途崩溃最多多清，不会留下过期的连续记录
func (r *StateRepository) Reset(ctx context.Context, device string, now time.Time) error {
	toDelete := []string{
		deviceKey(device, keyCheckins),
		deviceKey(device, keyGoals),
	}
	flags, err := r.kv.Keys(ctx, deviceKey(device, flagPrefix))
	if err == nil {
		toDelete = append(toDelete, flags...)
	} else {
		logger.Log.Warn("failed to enumerate flags during reset", zap.Error(err))
	}

	if err := r.kv.Delete(ctx, toDelete...); err != nil {
		return err
	}
	return r.SetQuitDate(ctx, device, now)
}
