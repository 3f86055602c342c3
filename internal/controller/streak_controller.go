package controller

import (
	"time"

	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StreakController struct {
	StreakService    *service.StreakService
	EconomicsService *service.EconomicsService
}

func NewStreakController(streakService *service.StreakService, economicsService *service.EconomicsService) *StreakController {
	return &StreakController{
		StreakService:    streakService,
		EconomicsService: economicsService,
	}
}

type QuitDateRequest struct {
	QuitDate time.Time `json:"quitDate" binding:"required"`
}

// @Summary 获取当前戒烟进度
// @Description 返回从戒烟日期到现在的天/时/分/秒和累计天数
// @Tags 戒烟进度
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/streak [get]
func (c *StreakController) GetStreak(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	streak, err := c.StreakService.CurrentStreak(ctx.Request.Context(), device)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}

// @Summary 设置戒烟日期
// @Description 修改戒烟起始日期，不能晚于当前时间或早于10年前
// @Tags 戒烟进度
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body QuitDateRequest true "戒烟日期"
// @Success 200 {object} util.Response
// @Router /api/streak/quit-date [put]
func (c *StreakController) SetQuitDate(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req QuitDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	streak, err := c.StreakService.SetQuitDate(ctx.Request.Context(), device, req.QuitDate)
	if err == util.ErrQuitDateInFuture || err == util.ErrQuitDateTooOld {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}

// @Summary 重置戒烟进度
// @Description 清空打卡记录、目标和一次性标记，并把戒烟日期设为当前时间
// @Tags 戒烟进度
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/streak/reset [post]
func (c *StreakController) Reset(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	streak, err := c.StreakService.Reset(ctx.Request.Context(), device)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}

// @Summary 获取节省统计
// @Description 按当前经济参数计算少抽的烟和省下的钱
// @Tags 经济统计
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/economics/savings [get]
func (c *StreakController) GetSavings(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	streak, err := c.StreakService.CurrentStreak(ctx.Request.Context(), device)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	savings := c.EconomicsService.Savings(ctx.Request.Context(), device, streak.TotalDays)
	util.Success(ctx, savings)
}
