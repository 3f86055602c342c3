package controller

import (
	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

type PermissionRequest struct {
	Granted bool `json:"granted"`
}

// @Summary 获取通知设置
// @Tags 通知
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/notifications/settings [get]
func (c *NotificationController) GetSettings(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	util.Success(ctx, c.NotificationService.Settings(ctx.Request.Context(), device))
}

// @Summary 更新通知设置
// @Description 保存分类开关和每日提醒时间(HH:MM)，并按新设置重排定时器
// @Tags 通知
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body model.NotificationSettings true "通知设置"
// @Success 200 {object} util.Response
// @Router /api/notifications/settings [put]
func (c *NotificationController) UpdateSettings(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	settings := model.DefaultNotificationSettings()
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.NotificationService.UpdateSettings(ctx.Request.Context(), device, settings); err != nil {
		util.BadRequest(ctx, "checkinTime must be HH:MM")
		return
	}

	util.Success(ctx, settings)
}

// @Summary 上报通知权限
// @Description 权限是显式用户动作的结果，服务端只记录，不会代为申请
// @Tags 通知
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body PermissionRequest true "权限结果"
// @Success 200 {object} util.Response
// @Router /api/notifications/permission [post]
func (c *NotificationController) SetPermission(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req PermissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.NotificationService.SetPermission(ctx.Request.Context(), device, req.Granted); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"granted": req.Granted})
}

// @Summary 注册推送订阅
// @Tags 通知
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body model.PushSubscription true "推送订阅"
// @Success 201 {object} util.Response
// @Router /api/notifications/subscription [post]
func (c *NotificationController) Subscribe(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var sub model.PushSubscription
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if sub.Endpoint == "" {
		util.BadRequest(ctx, "endpoint is required")
		return
	}

	if err := c.NotificationService.Subscribe(ctx.Request.Context(), device, sub); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"endpoint": sub.Endpoint})
}

// @Summary 取消推送订阅
// @Tags 通知
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/notifications/subscription [delete]
func (c *NotificationController) Unsubscribe(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	if err := c.NotificationService.Unsubscribe(ctx.Request.Context(), device); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"unsubscribed": true})
}

// @Summary 发送测试通知
// @Description 即刻走完整投递链路，便于验证端到端配置
// @Tags 通知
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/notifications/test [post]
func (c *NotificationController) SendTest(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	payload := c.NotificationService.BuildPayload(
		"Rebirth Test",
		"Notifications are working. Keep going! 💪",
		model.CategoryDailyCheckin,
		false,
	)
	if err := c.NotificationService.DisplayNow(ctx.Request.Context(), device, payload); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"sent": true})
}
