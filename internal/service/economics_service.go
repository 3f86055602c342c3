package service

import (
	"context"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
)

type EconomicsService struct {
	State *repository.StateRepository
}

func NewEconomicsService(state *repository.StateRepository) *EconomicsService {
	return &EconomicsService{State: state}
}

func (s *EconomicsService) Get(ctx context.Context, device string) model.CustomEconomics {
	return s.State.Economics(ctx, device)
}

// Update 两个字段一起写入，避免部分更新之间的竞态
func (s *EconomicsService) Update(ctx context.Context, device string, eco model.CustomEconomics) error {
	if eco.CigarettesPerDay < 0 || eco.CostPerCigarette < 0 {
		return util.ErrInvalidEconomics
	}
	return s.State.SaveEconomics(ctx, device, eco)
}

func (s *EconomicsService) UpdateCigarettesPerDay(ctx context.Context, device string, perDay int) error {
	eco := s.State.Economics(ctx, device)
	eco.CigarettesPerDay = perDay
	return s.Update(ctx, device, eco)
}

func (s *EconomicsService) UpdateCostPerCigarette(ctx context.Context, device string, cost float64) error {
	eco := s.State.Economics(ctx, device)
	eco.CostPerCigarette = cost
	return s.Update(ctx, device, eco)
}

func (s *EconomicsService) ResetDefaults(ctx context.Context, device string) error {
	return s.State.SaveEconomics(ctx, device, model.DefaultEconomics())
}

// CigarettesAvoided 纯函数：days * 每日吸烟量
func CigarettesAvoided(eco model.CustomEconomics, days int) int {
	return days * eco.CigarettesPerDay
}

// MoneySaved 纯函数：days * 每日吸烟量 * 单支价格
func MoneySaved(eco model.CustomEconomics, days int) float64 {
	return float64(days*eco.CigarettesPerDay) * eco.CostPerCigarette
}

// Savings 按当前参数和给定天数汇总节省情况
func (s *EconomicsService) Savings(ctx context.Context, device string, days int) model.Savings {
	eco := s.State.Economics(ctx, device)
	return model.Savings{
		Days:              days,
		CigarettesAvoided: CigarettesAvoided(eco, days),
		MoneySaved:        MoneySaved(eco, days),
	}
}
