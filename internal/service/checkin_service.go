package service

import (
	"context"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"time"
)

const dayKeyLayout = "2006-01-02"

type CheckinService struct {
	State *repository.StateRepository
	now   func() time.Time
}

func NewCheckinService(state *repository.StateRepository) *CheckinService {
	return &CheckinService{State: state, now: time.Now}
}

// CheckInToday 写入今天的打卡记录，同一天重复打卡为整条替换
func (s *CheckinService) CheckInToday(ctx context.Context, device string, mood int, notes string) (model.Checkin, error) {
	if mood != 0 && (mood < 1 || mood > 5) {
		return model.Checkin{}, util.ErrInvalidMood
	}

	now := s.now()
	today := now.Format(dayKeyLayout)

	checkins := s.State.Checkins(ctx, device)
	kept := checkins[:0]
	for _, c := range checkins {
		if c.Date != today {
			kept = append(kept, c)
		}
	}

	record := model.Checkin{
		Date:      today,
		CheckedIn: true,
		Mood:      mood,
		Notes:     notes,
		Timestamp: now.UnixMilli(),
	}
	kept = append(kept, record)

	if err := s.State.SaveCheckins(ctx, device, kept); err != nil {
		return model.Checkin{}, err
	}
	return record, nil
}

// TodayCheckin 今天的打卡记录，未打卡时第二个返回值为 false
func (s *CheckinService) TodayCheckin(ctx context.Context, device string) (model.Checkin, bool) {
	today := s.now().Format(dayKeyLayout)
	for _, c := range s.State.Checkins(ctx, device) {
		if c.Date == today && c.CheckedIn {
			return c, true
		}
	}
	return model.Checkin{}, false
}

// ConsecutiveStreak 从今天往回数的连续打卡天数，遇到第一个缺口即停
// 按日历日比较，不看具体小时数
func (s *CheckinService) ConsecutiveStreak(ctx context.Context, device string) int {
	byDate := make(map[string]bool)
	for _, c := range s.State.Checkins(ctx, device) {
		if c.CheckedIn {
			byDate[c.Date] = true
		}
	}

	streak := 0
	day := s.now()
	for byDate[day.Format(dayKeyLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// RecentWindow 最近 days 个日历日（今天在前），缺记录的日期补 CheckedIn=false
func (s *CheckinService) RecentWindow(ctx context.Context, device string, days int) []model.CheckinDay {
	byDate := make(map[string]model.Checkin)
	for _, c := range s.State.Checkins(ctx, device) {
		byDate[c.Date] = c
	}

	now := s.now()
	window := make([]model.CheckinDay, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i).Format(dayKeyLayout)
		c := byDate[date]
		window = append(window, model.CheckinDay{
			Date:      date,
			CheckedIn: c.CheckedIn,
			Mood:      c.Mood,
			Notes:     c.Notes,
		})
	}
	return window
}

// Stats 打卡统计，打卡率基于最近30天窗口四舍五入到整数
func (s *CheckinService) Stats(ctx context.Context, device string) model.CheckinStats {
	total := 0
	for _, c := range s.State.Checkins(ctx, device) {
		if c.CheckedIn {
			total++
		}
	}

	recent := s.RecentWindow(ctx, device, 30)
	checked := 0
	for _, day := range recent {
		if day.CheckedIn {
			checked++
		}
	}
	rate := int(float64(checked)/float64(len(recent))*100 + 0.5)

	return model.CheckinStats{
		TotalCheckins:  total,
		Streak:         s.ConsecutiveStreak(ctx, device),
		CheckinRate:    rate,
		RecentCheckins: recent,
	}
}
