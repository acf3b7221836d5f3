package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyfood/models"
)

func TestCanTransitionHappyPath(t *testing.T) {
	for _, actor := range []string{"restaurant", "system"} {
		assert.NoError(t, CanTransition(models.StatusPreparing, models.StatusReady, actor))
		assert.NoError(t, CanTransition(models.StatusReady, models.StatusDelivering, actor))
		assert.NoError(t, CanTransition(models.StatusDelivering, models.StatusCompleted, actor))
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	for _, from := range []models.OrderStatus{
		models.StatusPreparing, models.StatusReady, models.StatusDelivering,
	} {
		assert.NoError(t, CanTransition(from, models.StatusCancelled, "customer"))
		assert.NoError(t, CanTransition(from, models.StatusCancelled, "restaurant"))
	}
	// The auto-advance driver never cancels.
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "system"))
}

func TestCanTransitionRejectsInvalid(t *testing.T) {
	// Skipping a step.
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusDelivering, "restaurant"))
	// Going backwards.
	assert.Error(t, CanTransition(models.StatusReady, models.StatusPreparing, "restaurant"))
	// Leaving a terminal state.
	assert.Error(t, CanTransition(models.StatusCompleted, models.StatusDelivering, "restaurant"))
	assert.Error(t, CanTransition(models.StatusCancelled, models.StatusPreparing, "restaurant"))
	// Unknown actor.
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusReady, "driver"))
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusReady, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusPreparing))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusDelivering, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusReady))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestGetAllTransitionsConsistent(t *testing.T) {
	transitions := GetAllTransitions()
	require.NotEmpty(t, transitions)
	for _, tr := range transitions {
		assert.NoError(t, CanTransition(tr.From, tr.To, tr.Actor))
		assert.False(t, tr.From.Terminal(), "terminal state %s has an outgoing transition", tr.From)
	}
}
