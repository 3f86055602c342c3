package controller

import (
	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EconomicsController struct {
	EconomicsService *service.EconomicsService
}

func NewEconomicsController(economicsService *service.EconomicsService) *EconomicsController {
	return &EconomicsController{EconomicsService: economicsService}
}

// @Summary 获取经济参数
// @Description 返回每日吸烟量和单支价格，未设置时返回默认值
// @Tags 经济统计
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/economics [get]
func (c *EconomicsController) GetEconomics(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	util.Success(ctx, c.EconomicsService.Get(ctx.Request.Context(), device))
}

// @Summary 更新经济参数
// @Description 两个参数一起更新，必须为非负数
// @Tags 经济统计
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body model.CustomEconomics true "经济参数"
// @Success 200 {object} util.Response
// @Router /api/economics [put]
func (c *EconomicsController) UpdateEconomics(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req model.CustomEconomics
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EconomicsService.Update(ctx.Request.Context(), device, req); err != nil {
		if err == util.ErrInvalidEconomics {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, c.EconomicsService.Get(ctx.Request.Context(), device))
}

// @Summary 恢复默认经济参数
// @Tags 经济统计
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/economics/reset [post]
func (c *EconomicsController) ResetEconomics(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	if err := c.EconomicsService.ResetDefaults(ctx.Request.Context(), device); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, c.EconomicsService.Get(ctx.Request.Context(), device))
}
