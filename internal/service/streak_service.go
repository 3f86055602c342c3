package service

import (
	"context"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"rebirth_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

const msPerDay = 24 * 60 * 60 * 1000

type StreakService struct {
	State *repository.StateRepository
	now   func() time.Time
}

func NewStreakService(state *repository.StateRepository) *StreakService {
	return &StreakService{State: state, now: time.Now}
}

// ComputeStreak 纯函数：按毫秒差拆分出天/时/分/秒
// now 早于 quit（时钟回拨或脏数据）时全部钳到零，不产生负值
func ComputeStreak(quit, now time.Time) model.StreakData {
	elapsed := now.UnixMilli() - quit.UnixMilli()
	if elapsed < 0 {
		logger.Log.Warn("quit date is after current time, clamping streak to zero",
			zap.Time("quitDate", quit), zap.Time("now", now))
		elapsed = 0
	}

	days := int(elapsed / msPerDay)
	hours := int(elapsed % msPerDay / (60 * 60 * 1000))
	minutes := int(elapsed % (60 * 60 * 1000) / (60 * 1000))
	seconds := int(elapsed % (60 * 1000) / 1000)

	return model.StreakData{
		Days:      days,
		Hours:     hours,
		Minutes:   minutes,
		Seconds:   seconds,
		TotalDays: days,
		QuitDate:  quit,
	}
}

// CurrentStreak 读取戒烟时刻并计算当前时长
// 首次访问时把戒烟时刻初始化为当前时间（系统生成路径不做范围校验）
func (s *StreakService) CurrentStreak(ctx context.Context, device string) (model.StreakData, error) {
	quit, ok := s.State.QuitDate(ctx, device)
	if !ok {
		quit = s.now()
		if err := s.State.SetQuitDate(ctx, device, quit); err != nil {
			return model.StreakData{}, err
		}
	}
	return ComputeStreak(quit, s.now()), nil
}

// SetQuitDate 手工修改戒烟时刻，校验不在未来且不早于10年前
func (s *StreakService) SetQuitDate(ctx context.Context, device string, quit time.Time) (model.StreakData, error) {
	now := s.now()
	if quit.After(now) {
		return model.StreakData{}, util.ErrQuitDateInFuture
	}
	if quit.Before(now.AddDate(-10, 0, 0)) {
		return model.StreakData{}, util.ErrQuitDateTooOld
	}

	if err := s.State.SetQuitDate(ctx, device, quit); err != nil {
		return model.StreakData{}, err
	}
	return ComputeStreak(quit, now), nil
}

// Reset 清空打卡/目标/标记并把戒烟时刻重置为现在
func (s *StreakService) Reset(ctx context.Context, device string) (model.StreakData, error) {
	now := s.now()
	if err := s.State.Reset(ctx, device, now); err != nil {
		return model.StreakData{}, err
	}
	return ComputeStreak(now, now), nil
}
