package worker

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// OriginFetcher 从上游资产源（构建好的前端静态站点）取数
type OriginFetcher struct {
	base   *url.URL
	client *http.Client
}

func NewOriginFetcher(originURL string, timeout time.Duration) (*OriginFetcher, error) {
	base, err := url.Parse(originURL)
	if err != nil {
		return nil, err
	}
	return &OriginFetcher{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (f *OriginFetcher) Fetch(ctx context.Context, path string, noCache bool) (*CachedResponse, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	target := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	if noCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 同源请求，响应一律视为 basic
	return &CachedResponse{
		Status:   resp.StatusCode,
		Header:   resp.Header.Clone(),
		Body:     body,
		Type:     "basic",
		StoredAt: time.Now(),
	}, nil
}
