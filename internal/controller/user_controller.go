package controller

import (
	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type UserNameRequest struct {
	Name string `json:"name"`
}

type FlagRequest struct {
	Value bool `json:"value"`
}

// @Summary 获取显示名称
// @Tags 个人资料
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Success 200 {object} util.Response
// @Router /api/profile/name [get]
func (c *UserController) GetName(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	util.Success(ctx, gin.H{"name": c.UserService.UserName(ctx.Request.Context(), device)})
}

// @Summary 设置显示名称
// @Description 空名称表示清除
// @Tags 个人资料
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param request body UserNameRequest true "名称"
// @Success 200 {object} util.Response
// @Router /api/profile/name [put]
func (c *UserController) SetName(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)

	var req UserNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetUserName(ctx.Request.Context(), device, req.Name); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"name": c.UserService.UserName(ctx.Request.Context(), device)})
}

// @Summary 读取一次性标记
// @Description 查询提示横幅等一次性界面标记是否已被关闭
// @Tags 个人资料
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param key path string true "标记名"
// @Success 200 {object} util.Response
// @Router /api/flags/{key} [get]
func (c *UserController) GetFlag(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	key := ctx.Param("key")
	util.Success(ctx, gin.H{
		"key":   key,
		"value": c.UserService.Flag(ctx.Request.Context(), device, key),
	})
}

// @Summary 写入一次性标记
// @Tags 个人资料
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "设备标识"
// @Param key path string true "标记名"
// @Param request body FlagRequest true "标记值"
// @Success 200 {object} util.Response
// @Router /api/flags/{key} [put]
func (c *UserController) SetFlag(ctx *gin.Context) {
	device := middleware.GetDevice(ctx)
	key := ctx.Param("key")

	var req FlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetFlag(ctx.Request.Context(), device, key, req.Value); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"key": key, "value": req.Value})
}
