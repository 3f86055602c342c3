package controller

import (
	"net/http"
	"time"

	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/util"
	"rebirth_backend/internal/worker"

	"github.com/gin-gonic/gin"
)

type WorkerController struct {
	Worker *worker.Worker
}

func NewWorkerController(w *worker.Worker) *WorkerController {
	return &WorkerController{Worker: w}
}

type WorkerMessageRequest struct {
	Type         worker.MessageType         `json:"type" binding:"required"`
	Notification *workerNotificationPayload `json:"notification"`
}

type workerNotificationPayload struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Tag                string `json:"tag"`
	RequireInteraction bool   `json:"requireInteraction"`
	DelayMs            int64  `json:"delay"`
}

func (p *workerNotificationPayload) toModel() *model.ScheduledNotification {
	return &model.ScheduledNotification{
		Title:              p.Title,
		Body:               p.Body,
		Tag:                p.Tag,
		RequireInteraction: p.RequireInteraction,
		Delay:              time.Duration(p.DelayMs) * time.Millisecond,
	}
}

type SyncRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// @Summary 向 worker 投递消息
// @Description 支持 SKIP_WAITING 和 SCHEDULE_NOTIFICATION 两种消息
// @Tags Worker
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body WorkerMessageRequest true "消息"
// @Success 202 {object} util.Response
// @Router /api/worker/message [post]
func (c *WorkerController) PostMessage(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req WorkerMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg := worker.Message{Type: req.Type, Device: device}
	if req.Notification != nil {
		msg.Notification = req.Notification.toModel()
	}
	if msg.Type == worker.MessageScheduleNotification && msg.Notification == nil {
		util.BadRequest(ctx, "notification payload is required")
		return
	}

	if err := c.Worker.Post(msg); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		return
	}

	ctx.JSON(http.StatusAccepted, util.Response{Code: http.StatusAccepted, Message: "accepted"})
}

// @Summary 查询 worker 状态
// @Description 返回生命周期阶段、缓存代次和待触发定时器数量
// @Tags Worker
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/worker/status [get]
func (c *WorkerController) GetStatus(ctx *gin.Context) {
	util.Success(ctx, c.Worker.Status())
}

// @Summary 注册后台同步标签
// @Tags Worker
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body SyncRequest true "同步标签"
// @Success 200 {object} util.Response
// @Router /api/worker/sync [post]
func (c *WorkerController) RegisterSync(ctx *gin.Context) {
	var req SyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.Worker.RegisterSync(req.Tag)
	util.Success(ctx, gin.H{"tag": req.Tag})
}
