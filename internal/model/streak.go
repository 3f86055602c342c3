package model

import "time"

// StreakData 自戒烟时刻起的连续时长，拆分为天/时/分/秒
// swagger:model StreakData
type StreakData struct {
	Days      int       `json:"days"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Seconds   int       `json:"seconds"`
	TotalDays int       `json:"totalDays"`
	QuitDate  time.Time `json:"quitDate"`
}
