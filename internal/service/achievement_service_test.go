package service

import (
	"testing"

	"rebirth_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAchievement(t *testing.T) {
	svc := NewAchievementService()

	next := svc.NextAchievement(0)
	require.NotNil(t, next)
	assert.Equal(t, 1, next.Day)

	next = svc.NextAchievement(3)
	require.NotNil(t, next)
	assert.Equal(t, 14, next.Day)

	// 过了最后一个里程碑后没有下一个
	assert.Nil(t, svc.NextAchievement(730))
	assert.Nil(t, svc.NextAchievement(1000))
}

func TestUnlockedAchievementsAtThirtyDays(t *testing.T) {
	svc := NewAchievementService()

	unlocked := svc.UnlockedAchievements(30)

	// 第30天同时解锁康复类和激励类各一条
	var atThirty []model.Achievement
	for _, a := range unlocked {
		if a.Day == 30 {
			atThirty = append(atThirty, a)
		}
	}
	require.Len(t, atThirty, 2)
	assert.Equal(t, model.CategoryHealing, atThirty[0].Category)
	assert.Equal(t, model.CategoryMotivational, atThirty[1].Category)
}

func TestListWithStatusCoversFullCatalog(t *testing.T) {
	svc := NewAchievementService()

	list := svc.ListWithStatus(14)
	require.Len(t, list, len(model.AllAchievements))

	for _, entry := range list {
		assert.Equal(t, entry.Achievement.Day <= 14, entry.Unlocked)
	}
}

func TestUnlockedBetween(t *testing.T) {
	svc := NewAchievementService()

	assert.Empty(t, svc.UnlockedBetween(5, 10))

	newly := svc.UnlockedBetween(13, 14)
	require.Len(t, newly, 1)
	assert.Equal(t, "Circulation Boosts", newly[0].Title)

	newly = svc.UnlockedBetween(29, 30)
	assert.Len(t, newly, 2)
}
