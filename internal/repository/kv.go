package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound 键不存在，调用方据此回退到默认值
var ErrKeyNotFound = errors.New("key not found")

// KV 键值存储能力抽象，对应浏览器端的 localStorage
// 写入在返回时即已落盘（无写缓冲）
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// Keys 返回所有带给定前缀的键
	Keys(ctx context.Context, prefix string) ([]string, error)
}
