package controller

import (
	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
	StreakService      *service.StreakService
}

func NewAchievementController(achievementService *service.AchievementService, streakService *service.StreakService) *AchievementController {
	return &AchievementController{
		AchievementService: achievementService,
		StreakService:      streakService,
	}
}

// @Summary 获取成就列表
// @Description 返回全部成就及按当前戒烟天数计算的解锁状态
// @Tags 成就系统
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/achievements [get]
func (c *AchievementController) ListAchievements(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	streak, err := c.StreakService.CurrentStreak(ctx.Request.Context(), device)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, c.AchievementService.ListWithStatus(streak.TotalDays))
}

// @Summary 获取下一个成就
// @Description 返回尚未解锁的最近一个成就，全部解锁时为空
// @Tags 成就系统
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/achievements/next [get]
func (c *AchievementController) NextAchievement(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	streak, err := c.StreakService.CurrentStreak(ctx.Request.Context(), device)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	next := c.AchievementService.NextAchievement(streak.TotalDays)
	util.Success(ctx, gin.H{
		"next":      next,
		"totalDays": streak.TotalDays,
	})
}

// @Summary 获取已解锁成就
// @Description 返回当前戒烟天数已经达成的全部成就
// @Tags 成就系统
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/achievements/unlocked [get]
func (c *AchievementController) UnlockedAchievements(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	streak, err := c.StreakService.CurrentStreak(ctx.Request.Context(), device)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, c.AchievementService.UnlockedAchievements(streak.TotalDays))
}
