package service

import (
	"context"
	"testing"

	"rebirth_backend/internal/model"
	"rebirth_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEconomicsDefaults(t *testing.T) {
	svc := NewEconomicsService(newTestState())

	eco := svc.Get(context.Background(), "dev1")
	assert.Equal(t, 10, eco.CigarettesPerDay)
	assert.Equal(t, 15.0, eco.CostPerCigarette)
}

func TestEconomicsUpdateAndReset(t *testing.T) {
	svc := NewEconomicsService(newTestState())

	err := svc.Update(context.Background(), "dev1", model.CustomEconomics{CigarettesPerDay: 20, CostPerCigarette: 2.5})
	require.NoError(t, err)

	eco := svc.Get(context.Background(), "dev1")
	assert.Equal(t, 20, eco.CigarettesPerDay)
	assert.Equal(t, 2.5, eco.CostPerCigarette)

	require.NoError(t, svc.ResetDefaults(context.Background(), "dev1"))
	assert.Equal(t, model.DefaultEconomics(), svc.Get(context.Background(), "dev1"))
}

func TestEconomicsRejectsNegativeValues(t *testing.T) {
	svc := NewEconomicsService(newTestState())

	err := svc.Update(context.Background(), "dev1", model.CustomEconomics{CigarettesPerDay: -1, CostPerCigarette: 5})
	assert.ErrorIs(t, err, util.ErrInvalidEconomics)

	err = svc.Update(context.Background(), "dev1", model.CustomEconomics{CigarettesPerDay: 10, CostPerCigarette: -0.5})
	assert.ErrorIs(t, err, util.ErrInvalidEconomics)
}

func TestPartialUpdatesKeepOtherField(t *testing.T) {
	svc := NewEconomicsService(newTestState())

	require.NoError(t, svc.UpdateCigarettesPerDay(context.Background(), "dev1", 25))
	require.NoError(t, svc.UpdateCostPerCigarette(context.Background(), "dev1", 1.2))

	eco := svc.Get(context.Background(), "dev1")
	assert.Equal(t, 25, eco.CigarettesPerDay)
	assert.Equal(t, 1.2, eco.CostPerCigarette)
}

func TestSavingsMath(t *testing.T) {
	eco := model.CustomEconomics{CigarettesPerDay: 10, CostPerCigarette: 15}

	assert.Equal(t, 300, CigarettesAvoided(eco, 30))
	assert.Equal(t, 4500.0, MoneySaved(eco, 30))
	assert.Equal(t, 0, CigarettesAvoided(eco, 0))
	assert.Equal(t, 0.0, MoneySaved(eco, 0))
}
