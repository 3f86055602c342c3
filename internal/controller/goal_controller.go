package controller

import (
	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

type GoalRequest struct {
	Text  string `json:"text" binding:"required"`
	Image string `json:"image"`
}

// @Summary 获取目标列表
// @Tags 戒烟目标
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	util.Success(ctx, c.GoalService.List(ctx.Request.Context(), device))
}

// @Summary 添加目标
// @Tags 戒烟目标
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body GoalRequest true "目标内容"
// @Success 201 {object} util.Response
// @Router /api/goals [post]
func (c *GoalController) AddGoal(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.Add(ctx.Request.Context(), device, req.Text, req.Image)
	if err == util.ErrGoalTextEmpty {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// @Summary 删除目标
// @Tags 戒烟目标
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) RemoveGoal(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	if err := c.GoalService.Remove(ctx.Request.Context(), device, ctx.Param("id")); err != nil {
		if err == util.ErrGoalNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary 上传目标配图
// @Description 上传图片并返回可访问的URL，配图随后随目标一起保存
// @Tags 戒烟目标
// @Accept multipart/form-data
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response
// @Router /api/goals/image [post]
func (c *GoalController) UploadImage(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.GoalService.UploadImage(ctx.Request.Context(), device, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
