package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"strings"
	"time"

	"github.com/google/uuid"
)

type GoalService struct {
	State   *repository.StateRepository
	Storage *StorageService
	now     func() time.Time
}

func NewGoalService(state *repository.StateRepository, storage *StorageService) *GoalService {
	return &GoalService{State: state, Storage: storage, now: time.Now}
}

func (s *GoalService) List(ctx context.Context, device string) []model.Goal {
	return s.State.Goals(ctx, device)
}

func (s *GoalService) Add(ctx context.Context, device, text, image string) (model.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Goal{}, util.ErrGoalTextEmpty
	}

	goal := model.Goal{
		ID:        uuid.New().String(),
		Text:      text,
		Image:     image,
		CreatedAt: s.now(),
	}

	goals := append(s.State.Goals(ctx, device), goal)
	if err := s.State.SaveGoals(ctx, device, goals); err != nil {
		return model.Goal{}, err
	}
	return goal, nil
}

func (s *GoalService) Remove(ctx context.Context, device, id string) error {
	goals := s.State.Goals(ctx, device)
	kept := goals[:0]
	found := false
	for _, g := range goals {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return util.ErrGoalNotFound
	}
	return s.State.SaveGoals(ctx, device, kept)
}

// UploadImage 存储目标图片并返回可访问的URL
func (s *GoalService) UploadImage(ctx context.Context, device, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	name := fmt.Sprintf("goals/%s/%s%s", device, uuid.New().String(), filepath.Ext(filename))
	return s.Storage.Provider.Upload(ctx, name, reader, size, contentType)
}
