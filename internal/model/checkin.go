package model

// Checkin 某个日历日的戒烟打卡记录，按日期去重
// swagger:model Checkin
type Checkin struct {
	Date      string `json:"date"` // YYYY-MM-DD，设备本地时区
	CheckedIn bool   `json:"checkedIn"`
	Mood      int    `json:"mood,omitempty"` // 1-5
	Notes     string `json:"notes,omitempty"`
	Timestamp int64  `json:"timestamp"` // 打卡时刻，毫秒
}

// CheckinDay 最近N天窗口中的一天，未打卡的日期 CheckedIn 为 false
type CheckinDay struct {
	Date      string `json:"date"`
	CheckedIn bool   `json:"checkedIn"`
	Mood      int    `json:"mood,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// CheckinStats 打卡统计 CheckinRate 为近30天打卡率（四舍五入到整数百分比）
type CheckinStats struct {
	TotalCheckins  int          `json:"totalCheckins"`
	Streak         int          `json:"streak"`
	CheckinRate    int          `json:"checkinRate"`
	RecentCheckins []CheckinDay `json:"recentCheckins"`
}
