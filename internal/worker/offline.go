package worker

import (
	"net/http"
	"time"
)

// offlinePage 导航请求网络失败且无缓存副本时内联返回的兜底页面
const offlinePage = `<!DOCTYPE html>
<html>
  <head>
    <title>Offline - Rebirth</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
      body {
        font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
        display: flex;
        align-items: center;
        justify-content: center;
        min-height: 100vh;
        margin: 0;
        background: linear-gradient(135deg, #0a0a0a 0%, #1a1a1a 100%);
        color: white;
        text-align: center;
      }
      .offline-container {
        max-width: 400px;
        padding: 2rem;
      }
      .offline-icon {
        font-size: 4rem;
        margin-bottom: 1rem;
      }
      h1 { margin-bottom: 1rem; }
      p { opacity: 0.8; margin-bottom: 2rem; }
      .retry-btn {
        background: #10b981;
        color: white;
        border: none;
        padding: 12px 24px;
        border-radius: 8px;
        font-size: 16px;
        cursor: pointer;
      }
    </style>
  </head>
  <body>
    <div class="offline-container">
      <div class="offline-icon">📱</div>
      <h1>You're Offline</h1>
      <p>Don't worry! Your streak data is saved locally. Check your connection and try again.</p>
      <button class="retry-btn" onclick="window.location.reload()">Try Again</button>
    </div>
  </body>
</html>`

// OfflineResponse 合成的离线页响应
func OfflineResponse() *CachedResponse {
	return &CachedResponse{
		Status: http.StatusOK,
		Header: http.Header{
			"Content-Type": []string{"text/html"},
		},
		Body:     []byte(offlinePage),
		Type:     "basic",
		StoredAt: time.Now(),
	}
}
