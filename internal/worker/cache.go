package worker

import (
	"context"
	"net/http"
	"rebirth_backend/internal/util"
	"rebirth_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Generation 缓存代标识，把资产缓存划分为 static 和 dynamic 两个桶
// 同一时刻只有一个代是当前代，其余都会在激活时被清掉
type Generation struct {
	Version string
}

func (g Generation) StaticBucket() string {
	return "rebirth-static-" + g.Version
}

func (g Generation) DynamicBucket() string {
	return "rebirth-dynamic-" + g.Version
}

// CachedResponse 缓存的响应快照
type CachedResponse struct {
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	Type     string      `json:"type"` // basic=同源，其余不入缓存
	StoredAt time.Time   `json:"storedAt"`
}

// CacheStore 桶化的响应缓存能力
// 各桶操作相互独立且幂等，无需额外加锁
type CacheStore interface {
	Put(ctx context.Context, bucket, key string, resp *CachedResponse) error
	// Match 未命中时返回 (nil, nil)
	Match(ctx context.Context, bucket, key string) (*CachedResponse, error)
	Buckets(ctx context.Context) ([]string, error)
	DeleteBucket(ctx context.Context, bucket string) error
}

// Fetcher 上游资产源的取数能力
type Fetcher interface {
	// noCache 要求绕过上游任何HTTP缓存取最新内容
	Fetch(ctx context.Context, path string, noCache bool) (*CachedResponse, error)
}

// CacheManager 离线缓存管理器
type CacheManager struct {
	gen           Generation
	store         CacheStore
	fetcher       Fetcher
	staticAssets  []string
	dynamicRoutes []string
	log           *zap.Logger
}

func NewCacheManager(gen Generation, store CacheStore, fetcher Fetcher, staticAssets, dynamicRoutes []string, log *zap.Logger) *CacheManager {
	return &CacheManager{
		gen:           gen,
		store:         store,
		fetcher:       fetcher,
		staticAssets:  staticAssets,
		dynamicRoutes: dynamicRoutes,
		log:           log,
	}
}

func (m *CacheManager) Generation() Generation {
	return m.gen
}

// Install 逐个预取静态清单并写入 static 桶
// 单个条目失败只计数不中断，整体失败也不会阻塞激活
func (m *CacheManager) Install(ctx context.Context) {
	succeeded, failed := 0, 0
	for _, asset := range m.staticAssets {
		resp, err := m.fetcher.Fetch(ctx, asset, false)
		if err != nil {
			m.log.Warn("failed to cache static asset", zap.String("asset", asset), zap.Error(err))
			failed++
			continue
		}
		if resp.Status != http.StatusOK {
			m.log.Warn("static asset returned non-200", zap.String("asset", asset), zap.Int("status", resp.Status))
			failed++
			continue
		}
		if err := m.store.Put(ctx, m.gen.StaticBucket(), asset, resp); err != nil {
			m.log.Warn("failed to store static asset", zap.String("asset", asset), zap.Error(err))
			failed++
			continue
		}
		succeeded++
	}
	m.log.Info("static assets cached",
		zap.Int("succeeded", succeeded), zap.Int("failed", failed),
		zap.String("bucket", m.gen.StaticBucket()))
}

// Activate 删除所有不属于当前代的桶，回收上一版本的缓存
func (m *CacheManager) Activate(ctx context.Context) error {
	buckets, err := m.store.Buckets(ctx)
	if err != nil {
		return err
	}
	for _, bucket := range buckets {
		if bucket == m.gen.StaticBucket() || bucket == m.gen.DynamicBucket() {
			continue
		}
		m.log.Info("deleting stale cache bucket", zap.String("bucket", bucket))
		if err := m.store.DeleteBucket(ctx, bucket); err != nil {
			return err
		}
	}
	return nil
}

// Eligible 判断请求是否进入缓存拦截
// 非GET、非http(s)以及开发期源码路径一律放行
func (m *CacheManager) Eligible(req *http.Request) bool {
	if req.Method != http.MethodGet {
		return false
	}
	if req.URL.Scheme != "" && !strings.HasPrefix(req.URL.Scheme, "http") {
		return false
	}
	path := req.URL.Path
	if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") ||
		strings.Contains(path, "/src/") ||
		strings.Contains(path, "node_modules") ||
		strings.Contains(path, "vite") {
		return false
	}
	return true
}

// isNavigation 整页加载请求
func isNavigation(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

func (m *CacheManager) matchesDynamicRoute(path string) bool {
	for _, route := range m.dynamicRoutes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}

// HandleFetch 缓存策略入口
// 导航请求走 network-first，其余GET走 cache-first
// 网络错误永远不会原样穿透给请求方
func (m *CacheManager) HandleFetch(ctx context.Context, req *http.Request) (*CachedResponse, error) {
	if !m.Eligible(req) {
		return nil, util.ErrFetchPassThrough
	}
	if isNavigation(req) {
		return m.handleNavigation(ctx)
	}
	return m.handleResource(ctx, req.URL.Path)
}

// handleNavigation network-first：总是先绕过缓存取根文档
// 成功则刷新 static 桶里的副本；失败退回缓存副本，再退回内联离线页
func (m *CacheManager) handleNavigation(ctx context.Context) (*CachedResponse, error) {
	fresh, err := m.fetcher.Fetch(ctx, "/", true)
	if err == nil && fresh.Status == http.StatusOK {
		if putErr := m.store.Put(ctx, m.gen.StaticBucket(), "/", fresh); putErr != nil {
			m.log.Warn("failed to refresh cached root document", zap.Error(putErr))
		}
		return fresh, nil
	}

	cached, matchErr := m.store.Match(ctx, m.gen.StaticBucket(), "/")
	if matchErr == nil && cached != nil {
		monitoring.CacheHits.WithLabelValues("static").Inc()
		return cached, nil
	}

	monitoring.OfflineFallbacks.Inc()
	return OfflineResponse(), nil
}

// handleResource cache-first；动态路由的成功同源响应先入 dynamic 桶再返回
func (m *CacheManager) handleResource(ctx context.Context, path string) (*CachedResponse, error) {
	if cached, err := m.store.Match(ctx, m.gen.StaticBucket(), path); err == nil && cached != nil {
		monitoring.CacheHits.WithLabelValues("static").Inc()
		return cached, nil
	}
	if cached, err := m.store.Match(ctx, m.gen.DynamicBucket(), path); err == nil && cached != nil {
		monitoring.CacheHits.WithLabelValues("dynamic").Inc()
		return cached, nil
	}
	monitoring.CacheMisses.Inc()

	resp, err := m.fetcher.Fetch(ctx, path, false)
	if err != nil {
		return nil, util.ErrNoCachedResponse
	}

	if resp.Status == http.StatusOK && resp.Type == "basic" && m.matchesDynamicRoute(path) {
		// 先写缓存再返回，避免响应体被双重消费
		if putErr := m.store.Put(ctx, m.gen.DynamicBucket(), path, resp); putErr != nil {
			m.log.Warn("failed to cache dynamic response", zap.String("path", path), zap.Error(putErr))
		}
	}
	return resp, nil
}
