package service

import (
	"context"
	"testing"

	"rebirth_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalAddListRemove(t *testing.T) {
	svc := NewGoalService(newTestState(), nil)
	ctx := context.Background()

	goal, err := svc.Add(ctx, "dev1", "  Run a 5k  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Run a 5k", goal.Text)
	assert.NotEmpty(t, goal.ID)

	other, err := svc.Add(ctx, "dev1", "Save for a trip", "/uploads/goals/trip.png")
	require.NoError(t, err)

	goals := svc.List(ctx, "dev1")
	require.Len(t, goals, 2)
	assert.Equal(t, goal.ID, goals[0].ID)

	require.NoError(t, svc.Remove(ctx, "dev1", goal.ID))
	goals = svc.List(ctx, "dev1")
	require.Len(t, goals, 1)
	assert.Equal(t, other.ID, goals[0].ID)
}

func TestGoalAddRejectsBlankText(t *testing.T) {
	svc := NewGoalService(newTestState(), nil)

	_, err := svc.Add(context.Background(), "dev1", "   ", "")
	assert.ErrorIs(t, err, util.ErrGoalTextEmpty)
}

func TestGoalRemoveUnknownID(t *testing.T) {
	svc := NewGoalService(newTestState(), nil)

	err := svc.Remove(context.Background(), "dev1", "nope")
	assert.ErrorIs(t, err, util.ErrGoalNotFound)
}

func TestGoalsScopedPerDevice(t *testing.T) {
	svc := NewGoalService(newTestState(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev1", "Sleep better", "")
	require.NoError(t, err)

	assert.Empty(t, svc.List(ctx, "dev2"))
}
