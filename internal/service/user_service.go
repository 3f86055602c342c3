package service

import (
	"context"
	"rebirth_backend/internal/repository"
	"strings"
)

// UserService 昵称与一次性UI标记（如安装横幅的关闭状态）
type UserService struct {
	State *repository.StateRepository
}

func NewUserService(state *repository.StateRepository) *UserService {
	return &UserService{State: state}
}

func (s *UserService) UserName(ctx context.Context, device string) string {
	return s.State.UserName(ctx, device)
}

// SetUserName 空白昵称会移除已存的键
func (s *UserService) SetUserName(ctx context.Context, device, name string) error {
	return s.State.SetUserName(ctx, device, strings.TrimSpace(name))
}

func (s *UserService) Flag(ctx context.Context, device, name string) bool {
	return s.State.Flag(ctx, device, name)
}

func (s *UserService) SetFlag(ctx context.Context, device, name string, set bool) error {
	return s.State.SetFlag(ctx, device, name, set)
}
