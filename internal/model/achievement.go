package model

type AchievementCategory string

const (
	CategoryHealing      AchievementCategory = "healing"
	CategoryMotivational AchievementCategory = "motivational"
)

// Achievement 成就条目，全部在代码中定义，运行期只读
// 同一天数可以在两个分类下各出现一次（如第30/90/180/270/365/730天）
// swagger:model Achievement
type Achievement struct {
	Day         int                 `json:"day"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"type"`
}

// AchievementStatus 成就及其解锁状态
type AchievementStatus struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}
