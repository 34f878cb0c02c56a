package plan

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

type (
	PlanRepository interface {
		CreatePlan(ctx context.Context, plan *entities.WeeklyPlan) error
		GetPlanByID(ctx context.Context, planID string) (*entities.WeeklyPlan, error)
		FinalizePlan(ctx context.Context, planID string, days entities.PlanDays, list entities.ShoppingList) (bool, error)
		CancelPlan(ctx context.Context, planID string) error
		UpdateShoppingList(ctx context.Context, planID string, list entities.ShoppingList) error
		ListPendingPlans(ctx context.Context, limit int) ([]*entities.WeeklyPlan, error)
		ClaimPlan(ctx context.Context, planID, claimant string, ttl time.Duration) (bool, error)
		ReleaseClaim(ctx context.Context, planID, claimant string) error
	}

	planRepository struct {
		db *gorm.DB
	}
)

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) CreatePlan(ctx context.Context, plan *entities.WeeklyPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) GetPlanByID(ctx context.Context, planID string) (*entities.WeeklyPlan, error) {
	var plan entities.WeeklyPlan
	err := r.db.WithContext(ctx).Where("id = ?", planID).First(&plan).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FinalizePlan writes the assembled days and shopping list together with the
// state flip in a single guarded update, so a plan cancelled or finalized
// concurrently is never overwritten. The bool reports whether the flip
// actually happened.
func (r *planRepository) FinalizePlan(ctx context.Context, planID string, days entities.PlanDays, list entities.ShoppingList) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.WeeklyPlan{}).
		Where("id = ? AND state = ?", planID, entities.PlanStatePending).
		Updates(map[string]interface{}{
			"state":         entities.PlanStateFinalized,
			"days":          days,
			"shopping_list": list,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *planRepository) CancelPlan(ctx context.Context, planID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.WeeklyPlan{}).
		Where("id = ? AND state = ?", planID, entities.PlanStatePending).
		Update("state", entities.PlanStateCancelled).Error
}

func (r *planRepository) UpdateShoppingList(ctx context.Context, planID string, list entities.ShoppingList) error {
	return r.db.WithContext(ctx).
		Model(&entities.WeeklyPlan{}).
		Where("id = ?", planID).
		Update("shopping_list", list).Error
}

// ListPendingPlans returns pending plans whose claim is absent or expired,
// oldest first.
func (r *planRepository) ListPendingPlans(ctx context.Context, limit int) ([]*entities.WeeklyPlan, error) {
	var plans []*entities.WeeklyPlan
	err := r.db.WithContext(ctx).
		Where("state = ?", entities.PlanStatePending).
		Where("claimed_by = '' OR claim_expiry < ?", time.Now()).
		Order("created_at asc").
		Limit(limit).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// ClaimPlan marks a pending plan as in-flight for one claimant via a
// conditional write, so the claim survives restarts and two sweeps can never
// take the same plan. Returns false when another live claim holds it.
func (r *planRepository) ClaimPlan(ctx context.Context, planID, claimant string, ttl time.Duration) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.WeeklyPlan{}).
		Where("id = ? AND state = ?", planID, entities.PlanStatePending).
		Where("claimed_by = '' OR claimed_by = ? OR claim_expiry < ?", claimant, time.Now()).
		Updates(map[string]interface{}{
			"claimed_by":   claimant,
			"claim_expiry": time.Now().Add(ttl),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *planRepository) ReleaseClaim(ctx context.Context, planID, claimant string) error {
	return r.db.WithContext(ctx).
		Model(&entities.WeeklyPlan{}).
		Where("id = ? AND claimed_by = ?", planID, claimant).
		Updates(map[string]interface{}{
			"claimed_by":   "",
			"claim_expiry": time.Time{},
		}).Error
}
