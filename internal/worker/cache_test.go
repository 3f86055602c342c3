package worker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rebirth_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	responses map[string]*CachedResponse
	offline   bool
	calls     []string
}

func (f *fakeFetcher) Fetch(_ context.Context, path string, _ bool) (*CachedResponse, error) {
	f.calls = append(f.calls, path)
	if f.offline {
		return nil, errors.New("dial tcp: connection refused")
	}
	if resp, ok := f.responses[path]; ok {
		copied := *resp
		return &copied, nil
	}
	return &CachedResponse{Status: http.StatusNotFound, Header: http.Header{}, Type: "basic"}, nil
}

func okResponse(body string) *CachedResponse {
	return &CachedResponse{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": []string{"text/html"}},
		Body:   []byte(body),
		Type:   "basic",
	}
}

func newTestManager(t *testing.T, fetcher *fakeFetcher, store CacheStore) *CacheManager {
	t.Helper()
	return NewCacheManager(
		Generation{Version: "v2.0.0"},
		store,
		fetcher,
		[]string{"/", "/index.html", "/manifest.json"},
		[]string{"/", "/home", "/achievements"},
		zap.NewNop(),
	)
}

func TestInstallCachesStaticAssets(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*CachedResponse{
		"/":           okResponse("<html>root</html>"),
		"/index.html": okResponse("<html>index</html>"),
	}}
	store := NewMemoryCacheStore()
	m := newTestManager(t, fetcher, store)

	// /manifest.json 会拿到404：跳过但不中断安装
	m.Install(context.Background())

	cached, err := store.Match(context.Background(), m.Generation().StaticBucket(), "/")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "<html>root</html>", string(cached.Body))

	missing, err := store.Match(context.Background(), m.Generation().StaticBucket(), "/manifest.json")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestActivateDeletesStaleGenerations(t *testing.T) {
	store := NewMemoryCacheStore()
	ctx := context.Background()

	// 上一代的两个桶加当前代的 static 桶
	require.NoError(t, store.Put(ctx, "rebirth-static-v1.0.0", "/", okResponse("old")))
	require.NoError(t, store.Put(ctx, "rebirth-dynamic-v1.0.0", "/home", okResponse("old")))
	require.NoError(t, store.Put(ctx, "rebirth-static-v2.0.0", "/", okResponse("new")))

	m := newTestManager(t, &fakeFetcher{}, store)
	require.NoError(t, m.Activate(ctx))

	buckets, err := store.Buckets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rebirth-static-v2.0.0"}, buckets)

	kept, err := store.Match(ctx, "rebirth-static-v2.0.0", "/")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "new", string(kept.Body))
}

func TestNavigationNetworkFirst(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*CachedResponse{
		"/": okResponse("<html>fresh</html>"),
	}}
	store := NewMemoryCacheStore()
	m := newTestManager(t, fetcher, store)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.Header.Set("Accept", "text/html")

	resp, err := m.HandleFetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "<html>fresh</html>", string(resp.Body))

	// 成功的导航响应要刷新 static 桶里的根文档副本
	cached, err := store.Match(context.Background(), m.Generation().StaticBucket(), "/")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "<html>fresh</html>", string(cached.Body))
}

func TestNavigationFallsBackToCachedRoot(t *testing.T) {
	fetcher := &fakeFetcher{offline: true}
	store := NewMemoryCacheStore()
	m := newTestManager(t, fetcher, store)

	require.NoError(t, store.Put(context.Background(), m.Generation().StaticBucket(), "/", okResponse("<html>cached</html>")))

	req := httptest.NewRequest(http.MethodGet, "/achievements", nil)
	req.Header.Set("Sec-Fetch-Mode", "navigate")

	resp, err := m.HandleFetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "<html>cached</html>", string(resp.Body))
}

func TestNavigationServesOfflinePageAsLastResort(t *testing.T) {
	m := newTestManager(t, &fakeFetcher{offline: true}, NewMemoryCacheStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")

	resp, err := m.HandleFetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(resp.Body), "You're Offline")
	assert.Contains(t, string(resp.Body), "Try Again")
}

func TestResourceCacheFirst(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*CachedResponse{
		"/app.js": okResponse("console.log('net')"),
	}}
	store := NewMemoryCacheStore()
	m := newTestManager(t, fetcher, store)

	require.NoError(t, store.Put(context.Background(), m.Generation().StaticBucket(), "/app.js", okResponse("console.log('cached')")))

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	resp, err := m.HandleFetch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "console.log('cached')", string(resp.Body))
	assert.Empty(t, fetcher.calls, "cache hit must not touch the network")
}

func TestResourceMissStoresDynamicRoute(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*CachedResponse{
		"/home": okResponse("<div>home</div>"),
	}}
	store := NewMemoryCacheStore()
	m := newTestManager(t, fetcher, store)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.Header.Set("Accept", "application/json")

	resp, err := m.HandleFetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "<div>home</div>", string(resp.Body))

	cached, err := store.Match(context.Background(), m.Generation().DynamicBucket(), "/home")
	require.NoError(t, err)
	require.NotNil(t, cached)
}

func TestResourceMissOutsideDynamicRoutesNotStored(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*CachedResponse{
		"/random.png": okResponse("png-bytes"),
	}}
	store := NewMemoryCacheStore()
	m := newTestManager(t, fetcher, store)

	req := httptest.NewRequest(http.MethodGet, "/random.png", nil)
	_, err := m.HandleFetch(context.Background(), req)
	require.NoError(t, err)

	cached, err := store.Match(context.Background(), m.Generation().DynamicBucket(), "/random.png")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestResourceOfflineWithoutCacheFails(t *testing.T) {
	m := newTestManager(t, &fakeFetcher{offline: true}, NewMemoryCacheStore())

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	_, err := m.HandleFetch(context.Background(), req)
	assert.ErrorIs(t, err, util.ErrNoCachedResponse)
}

func TestEligibleSkipsDevAndNonGet(t *testing.T) {
	m := newTestManager(t, &fakeFetcher{}, NewMemoryCacheStore())

	for _, path := range []string{"/src/main.tsx", "/app.ts", "/node_modules/react/index.js", "/@vite/client"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		assert.False(t, m.Eligible(req), path)
	}

	post := httptest.NewRequest(http.MethodPost, "/home", strings.NewReader("{}"))
	assert.False(t, m.Eligible(post))

	get := httptest.NewRequest(http.MethodGet, "/home", nil)
	assert.True(t, m.Eligible(get))
}
