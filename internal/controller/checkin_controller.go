package controller

import (
	"strconv"

	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheckinController struct {
	CheckinService      *service.CheckinService
	StreakService       *service.StreakService
	AchievementService  *service.AchievementService
	NotificationService *service.NotificationService
}

func NewCheckinController(
	checkinService *service.CheckinService,
	streakService *service.StreakService,
	achievementService *service.AchievementService,
	notificationService *service.NotificationService,
) *CheckinController {
	return &CheckinController{
		CheckinService:      checkinService,
		StreakService:       streakService,
		AchievementService:  achievementService,
		NotificationService: notificationService,
	}
}

type CheckinRequest struct {
	Mood  int    `json:"mood"`
	Notes string `json:"notes"`
}

// @Summary 今日打卡
// @Description 记录今天的打卡，可附带心情评分(1-5)和笔记；重复打卡覆盖当天记录
// @Tags 每日打卡
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body CheckinRequest false "打卡内容"
// @Success 201 {object} util.Response
// @Router /api/checkins [post]
func (c *CheckinController) CheckInToday(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req CheckinRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	checkin, err := c.CheckinService.CheckInToday(ctx.Request.Context(), device, req.Mood, req.Notes)
	if err == util.ErrInvalidMood {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.notifyProgress(ctx, device)
	util.Created(ctx, checkin)
}

// notifyProgress 打卡后推送当天新达成的成就和连续打卡提醒
func (c *CheckinController) notifyProgress(ctx *gin.Context, device string) {
	streak, err := c.StreakService.CurrentStreak(ctx.Request.Context(), device)
	if err != nil {
		return
	}

	for _, a := range c.AchievementService.UnlockedBetween(streak.TotalDays-1, streak.TotalDays) {
		if a.Category == model.CategoryHealing {
			_ = c.NotificationService.NotifyMilestone(ctx.Request.Context(), device, a.Title, a.Day)
		} else {
			_ = c.NotificationService.NotifyAchievement(ctx.Request.Context(), device, a.Title)
		}
	}

	if consecutive := c.CheckinService.ConsecutiveStreak(ctx.Request.Context(), device); consecutive > 0 && consecutive%7 == 0 {
		_ = c.NotificationService.NotifyStreak(ctx.Request.Context(), device, consecutive)
	}
}

// @Summary 获取今日打卡
// @Tags 每日打卡
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/checkins/today [get]
func (c *CheckinController) GetToday(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	checkin, ok := c.CheckinService.TodayCheckin(ctx.Request.Context(), device)
	util.Success(ctx, gin.H{
		"checkedIn": ok,
		"checkin":   checkin,
	})
}

// @Summary 获取打卡统计
// @Description 返回总打卡数、连续打卡天数和最近30天打卡率
// @Tags 每日打卡
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/checkins/stats [get]
func (c *CheckinController) GetStats(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	util.Success(ctx, c.CheckinService.Stats(ctx.Request.Context(), device))
}

// @Summary 获取近期打卡记录
// @Tags 每日打卡
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param days query int false "回看天数" default(7)
// @Success 200 {object} util.Response
// @Router /api/checkins/recent [get]
func (c *CheckinController) GetRecent(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	days := 7
	if daysStr := ctx.Query("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	util.Success(ctx, c.CheckinService.RecentWindow(ctx.Request.Context(), device, days))
}
