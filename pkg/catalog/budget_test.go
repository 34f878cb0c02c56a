package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBudgetTrackerConsumeWithinLimit(t *testing.T) {
	budget := NewBudgetTracker(100)

	assert.True(t, budget.TryConsume(40))
	assert.True(t, budget.TryConsume(60))
	assert.Equal(t, 0.0, budget.Remaining())
}

func TestBudgetTrackerRefusesOverLimit(t *testing.T) {
	budget := NewBudgetTracker(100)

	assert.True(t, budget.TryConsume(90))
	assert.False(t, budget.TryConsume(20))

	// a refused consume must not change the counter
	assert.Equal(t, 10.0, budget.Remaining())
	assert.True(t, budget.TryConsume(10))
}

func TestBudgetTrackerResetsAfterWindow(t *testing.T) {
	budget := NewBudgetTracker(100)
	assert.True(t, budget.TryConsume(100))
	assert.False(t, budget.TryConsume(1))

	budget.mu.Lock()
	budget.lastResetTime = time.Now().Add(-25 * time.Hour)
	budget.mu.Unlock()

	assert.Equal(t, 100.0, budget.Remaining())
	assert.True(t, budget.TryConsume(50))
}

func TestBudgetTrackerRefund(t *testing.T) {
	budget := NewBudgetTracker(100)
	assert.True(t, budget.TryConsume(30))

	budget.Refund(30)
	assert.Equal(t, 100.0, budget.Remaining())

	// refunding more than was spent clamps at zero usage
	budget.Refund(50)
	assert.Equal(t, 100.0, budget.Remaining())
}

func TestBudgetTrackerDefaultsLimit(t *testing.T) {
	budget := NewBudgetTracker(0)
	assert.Equal(t, float64(DefaultDailyPointLimit), budget.Remaining())
}
