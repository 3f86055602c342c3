package controller

import (
	"net/http"

	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"rebirth_backend/internal/worker"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	KV     repository.KV
	Worker *worker.Worker
}

func NewHealthController(kv repository.KV, w *worker.Worker) *HealthController {
	return &HealthController{KV: kv, Worker: w}
}

// @Summary 健康检查
// @Description 检查状态存储和 worker 是否可用
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 探测状态存储连通性
	if _, err := c.KV.Get(ctx.Request.Context(), "rebirth:health:probe"); err != nil && err != repository.ErrKeyNotFound {
		util.Error(ctx, http.StatusServiceUnavailable, "State store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"state":  "up",
			"worker": c.Worker.Phase().String(),
		},
	})
}
