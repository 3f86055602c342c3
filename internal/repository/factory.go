package repository

import (
	"fmt"
	"rebirth_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewKV 按配置选择键值存储后端
// redis 需要已建立的客户端；file 落到单个JSON文件；memory 仅进程内
func NewKV(cfg *config.StateConfig, rdb *redis.Client) (KV, error) {
	switch cfg.Type {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("state.type is redis but no redis client configured")
		}
		return NewRedisKV(rdb), nil
	case "file":
		path := cfg.Path
		if path == "" {
			path = "data/state.json"
		}
		return NewFileKV(path)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown state store type: %q", cfg.Type)
	}
}
