package plan

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultSweepInterval = 30 * time.Minute
	defaultSweepBatch    = 3

	// claimTTL bounds how long a crashed worker can hold a plan before
	// another sweep may take it over.
	claimTTL = time.Hour
)

type (
	// Worker periodically re-processes plans stuck in the pending state,
	// typically because the process restarted between creation and
	// finalization. Claims live on the plan record itself so they survive
	// restarts and multiple instances never process the same plan.
	Worker struct {
		planService    PlanService
		planRepository PlanRepository
		identity       string
		interval       time.Duration
		batchSize      int
		stop           chan struct{}
		stopOnce       sync.Once
	}
)

func NewWorker(planService PlanService, planRepository PlanRepository) *Worker {
	return &Worker{
		planService:    planService,
		planRepository: planRepository,
		identity:       uuid.NewString(),
		interval:       defaultSweepInterval,
		batchSize:      defaultSweepBatch,
		stop:           make(chan struct{}),
	}
}

// Start runs one sweep immediately, then keeps sweeping on the interval
// until Stop is called.
func (w *Worker) Start() {
	go func() {
		w.sweep()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.stop:
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// sweep picks up at most batchSize unclaimed pending plans and processes
// them sequentially, keeping catalog point usage per sweep small. Each plan
// is claimed with a conditional write first; losing the claim race simply
// skips the plan.
func (w *Worker) sweep() {
	ctx := context.Background()

	plans, err := w.planRepository.ListPendingPlans(ctx, w.batchSize)
	if err != nil {
		log.Printf("pending plan sweep failed: %v", err)
		return
	}
	if len(plans) == 0 {
		return
	}

	log.Printf("recovering %d pending plan(s)", len(plans))
	for _, pending := range plans {
		planID := pending.ID.String()

		claimed, err := w.planRepository.ClaimPlan(ctx, planID, w.identity, claimTTL)
		if err != nil {
			log.Printf("claiming plan %s failed: %v", planID, err)
			continue
		}
		if !claimed {
			continue
		}

		if err := w.planService.ProcessPlan(ctx, planID); err != nil {
			log.Printf("recovery of plan %s failed: %v", planID, err)
		}
		if err := w.planRepository.ReleaseClaim(ctx, planID, w.identity); err != nil {
			log.Printf("releasing claim on plan %s failed: %v", planID, err)
		}
	}
}
