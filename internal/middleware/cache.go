package middleware

import (
	"net/http"
	"strings"

	"rebirth_backend/internal/util"
	"rebirth_backend/internal/worker"

	"github.com/gin-gonic/gin"
)

// reservedPrefixes API 面之外由各自处理器负责的路径
var reservedPrefixes = []string{"/api", "/swagger", "/metrics", "/health", "/uploads"}

// CacheMiddleware 把前端资产请求交给离线缓存层
// worker 激活前请求直接放行，与注册生效前页面直连网络的行为一致
func CacheMiddleware(w *worker.Worker, cache *worker.CacheManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range reservedPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		if !w.Active() {
			c.Next()
			return
		}

		resp, err := cache.HandleFetch(c.Request.Context(), c.Request)
		if err == util.ErrFetchPassThrough {
			c.Next()
			return
		}
		if err != nil {
			util.Error(c, http.StatusBadGateway, "upstream unreachable and no cached copy")
			c.Abort()
			return
		}

		writeCachedResponse(c, resp)
		c.Abort()
	}
}

func writeCachedResponse(c *gin.Context, resp *worker.CachedResponse) {
	for key, values := range resp.Header {
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	c.Writer.WriteHeader(resp.Status)
	c.Writer.Write(resp.Body)
}
