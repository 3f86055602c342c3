package middleware

import (
	"strings"

	"rebirth_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const deviceContextKey = "device"

// DeviceMiddleware 提取 X-Device-ID 头，所有状态按设备隔离
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		device := strings.TrimSpace(c.GetHeader("X-Device-ID"))
		if device == "" {
			device = strings.TrimSpace(c.Query("device"))
		}

		if device == "" {
			util.BadRequest(c, "missing X-Device-ID header")
			c.Abort()
			return
		}

		c.Set(deviceContextKey, device)
		c.Next()
	}
}

// GetDevice 读取当前请求的设备标识
func GetDevice(c *gin.Context) string {
	return c.GetString(deviceContextKey)
}
