package model

import "sort"

// HealingAchievements 基于生理恢复节点的成就（天数不规则）
var HealingAchievements = []Achievement{
	{Day: 1, Title: "Oxygen Levels Improve", Description: "Within 24 hours, oxygen levels in your blood rise and carbon monoxide levels drop.", Category: CategoryHealing},
	{Day: 2, Title: "Nicotine Leaves the Body", Description: "By 48 hours, nicotine has fully left your body. Your sense of taste and smell start to improve.", Category: CategoryHealing},
	{Day: 3, Title: "Breathing Improves", Description: "Bronchial tubes begin to relax, making breathing easier.", Category: CategoryHealing},
	{Day: 14, Title: "Circulation Boosts", Description: "2 weeks smoke-free improves blood circulation and physical stamina.", Category: CategoryHealing},
	{Day: 30, Title: "Lung Function Begins to Recover", Description: "After 1 month, lung function improves, making exercise easier.", Category: CategoryHealing},
	{Day: 90, Title: "Energy Returns", Description: "At 3 months, your lung capacity has increased and you feel less fatigue.", Category: CategoryHealing},
	{Day: 180, Title: "Cough and Breathing Improve", Description: "At 6 months, cilia in your lungs regrow, reducing coughing and mucus buildup.", Category: CategoryHealing},
	{Day: 270, Title: "Strong Lungs", Description: "At 9 months, lung efficiency is much higher, and infections are less frequent.", Category: CategoryHealing},
	{Day: 365, Title: "Heart Health Boost", Description: "At 1 year, your risk of heart disease is cut in half compared to a smoker.", Category: CategoryHealing},
	{Day: 730, Title: "Near Non-Smoker Circulation", Description: "At 2 years, your circulation and lung health are close to a non-smoker's.", Category: CategoryHealing},
}

// MotivationalAchievements 每30天一个的激励型成就，至730天为止
var MotivationalAchievements = []Achievement{
	{Day: 30, Title: "30 Days Strong", Description: "1 month smoke-free! You saved money and improved your stamina.", Category: CategoryMotivational},
	{Day: 60, Title: "2 Months Clean", Description: "Two months strong! Your cravings are less frequent now.", Category: CategoryMotivational},
	{Day: 90, Title: "3 Months Power", Description: "Quarter year done! Energy and lung health are better.", Category: CategoryMotivational},
	{Day: 120, Title: "4 Months Milestone", Description: "You stayed consistent for 120 days. Amazing control!", Category: CategoryMotivational},
	{Day: 150, Title: "5 Months Warrior", Description: "Almost half a year! You've avoided thousands of cigarettes.", Category: CategoryMotivational},
	{Day: 180, Title: "6 Months Champion", Description: "Half a year smoke-free! Your body has healed massively.", Category: CategoryMotivational},
	{Day: 210, Title: "7 Months Fighter", Description: "You've built a strong smoke-free habit for 7 months.", Category: CategoryMotivational},
	{Day: 240, Title: "8 Months Progress", Description: "Confidence grows stronger every day!", Category: CategoryMotivational},
	{Day: 270, Title: "9 Months Winner", Description: "Lungs healthier, infections rarer — keep it up.", Category: CategoryMotivational},
	{Day: 300, Title: "10 Months Free", Description: "Double digits in months! You've saved a lot of money too.", Category: CategoryMotivational},
	{Day: 330, Title: "11 Months Fighter", Description: "Nearly a year without smoking. Massive achievement.", Category: CategoryMotivational},
	{Day: 365, Title: "1 Year Smoke-Free!", Description: "Heart risk halved, new life gained.", Category: CategoryMotivational},
	{Day: 395, Title: "13 Months Clean", Description: "Past the one-year mark — now truly a lifestyle.", Category: CategoryMotivational},
	{Day: 425, Title: "14 Months Free", Description: "Your body is recovering deeper now.", Category: CategoryMotivational},
	{Day: 455, Title: "15 Months Strong", Description: "Consistency is your biggest weapon!", Category: CategoryMotivational},
	{Day: 485, Title: "16 Months Resilient", Description: "Almost a year and a half smoke-free.", Category: CategoryMotivational},
	{Day: 515, Title: "17 Months Milestone", Description: "Your cravings are rare, and your health is much stronger.", Category: CategoryMotivational},
	{Day: 545, Title: "18 Months Freedom", Description: "You've avoided long-term damage by staying clean.", Category: CategoryMotivational},
	{Day: 575, Title: "19 Months Fighter", Description: "Your new lifestyle is permanent now.", Category: CategoryMotivational},
	{Day: 605, Title: "20 Months Hero", Description: "You're inspiring others to quit by your example.", Category: CategoryMotivational},
	{Day: 635, Title: "21 Months Champion", Description: "Your lungs and heart are near non-smoker levels.", Category: CategoryMotivational},
	{Day: 665, Title: "22 Months Strong", Description: "Every day smoke-free adds years to your life.", Category: CategoryMotivational},
	{Day: 695, Title: "23 Months Victory", Description: "Just one month away from 2 years!", Category: CategoryMotivational},
	{Day: 730, Title: "2 Years Smoke-Free!", Description: "Your circulation and lung health are close to a non-smoker's. Truly free!", Category: CategoryMotivational},
}

// AllAchievements 两个列表按天数升序合并后的完整目录
var AllAchievements []Achievement

func init() {
	AllAchievements = make([]Achievement, 0, len(HealingAchievements)+len(MotivationalAchievements))
	AllAchievements = append(AllAchievements, HealingAchievements...)
	AllAchievements = append(AllAchievements, MotivationalAchievements...)
	// 稳定排序保证同一天数时 healing 条目在前
	sort.SliceStable(AllAchievements, func(i, j int) bool {
		return AllAchievements[i].Day < AllAchievements[j].Day
	})
}

// MaxAchievementDay 目录中的最大天数
func MaxAchievementDay() int {
	return AllAchievements[len(AllAchievements)-1].Day
}
