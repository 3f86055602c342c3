package service

import "rebirth_backend/internal/model"

type AchievementService struct{}

func NewAchievementService() *AchievementService {
	return &AchievementService{}
}

// NextAchievement 目录中第一个天数大于 totalDays 的条目
// 已过最后一个里程碑（730天）时返回 nil
func (s *AchievementService) NextAchievement(totalDays int) *model.Achievement {
	for i := range model.AllAchievements {
		if model.AllAchievements[i].Day > totalDays {
			a := model.AllAchievements[i]
			return &a
		}
	}
	return nil
}

// UnlockedAchievements 天数不超过 totalDays 的全部条目，保持目录顺序
// 同一天数在两个分类下的条目会同时解锁
func (s *AchievementService) UnlockedAchievements(totalDays int) []model.Achievement {
	var unlocked []model.Achievement
	for _, a := range model.AllAchievements {
		if a.Day <= totalDays {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// ListWithStatus 完整目录及各条目的解锁状态
func (s *AchievementService) ListWithStatus(totalDays int) []model.AchievementStatus {
	out := make([]model.AchievementStatus, 0, len(model.AllAchievements))
	for _, a := range model.AllAchievements {
		out = append(out, model.AchievementStatus{
			Achievement: a,
			Unlocked:    a.Day <= totalDays,
		})
	}
	return out
}

// UnlockedBetween 天数从 prevDays 涨到 totalDays 时新解锁的条目
// 用于触发成就通知
func (s *AchievementService) UnlockedBetween(prevDays, totalDays int) []model.Achievement {
	var out []model.Achievement
	for _, a := range model.AllAchievements {
		if a.Day > prevDays && a.Day <= totalDays {
			out = append(out, a)
		}
	}
	return out
}
