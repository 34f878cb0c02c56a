package catalog

import (
	"log"
	"sync"
	"time"
)

const (
	DefaultDailyPointLimit = 150
	DefaultPerPlanCap      = 30

	searchPointsBase      = 5.0
	searchPointsPerResult = 0.5
	detailPointCost       = 1.0

	resetWindow = 24 * time.Hour
)

// BudgetTracker keeps the daily point quota spent against the recipe
// catalog. State is process-local: a horizontally scaled deployment would
// keep one independent counter per instance.
type BudgetTracker struct {
	mu              sync.Mutex
	dailyLimit      float64
	pointsUsedToday float64
	lastResetTime   time.Time
}

func NewBudgetTracker(dailyLimit float64) *BudgetTracker {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyPointLimit
	}
	return &BudgetTracker{
		dailyLimit:    dailyLimit,
		lastResetTime: time.Now(),
	}
}

// resetIfWindowElapsed zeroes the counter once the rolling 24h window has
// passed. Callers must hold b.mu.
func (b *BudgetTracker) resetIfWindowElapsed() {
	if time.Since(b.lastResetTime) > resetWindow {
		b.pointsUsedToday = 0
		b.lastResetTime = time.Now()
		log.Println("daily recipe API point counter reset")
	}
}

// TryConsume reserves points against the daily quota. It returns false
// without mutating the counter when the request would exceed the limit.
func (b *BudgetTracker) TryConsume(points float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfWindowElapsed()

	if b.pointsUsedToday+points > b.dailyLimit {
		log.Printf("daily point limit reached: %.1f/%.1f", b.pointsUsedToday, b.dailyLimit)
		return false
	}

	b.pointsUsedToday += points
	log.Printf("points used: %.1f/%.1f", b.pointsUsedToday, b.dailyLimit)
	return true
}

// Refund returns points consumed for a call that ended up served by local
// fallback recipes, so fallbacks cost nothing.
func (b *BudgetTracker) Refund(points float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pointsUsedToday -= points
	if b.pointsUsedToday < 0 {
		b.pointsUsedToday = 0
	}
}

func (b *BudgetTracker) Remaining() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfWindowElapsed()
	return b.dailyLimit - b.pointsUsedToday
}
