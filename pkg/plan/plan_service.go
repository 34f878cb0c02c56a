package plan

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/internal/utils/mailing"
	"Meal-Planner-Backend/pkg/pantry"
	"Meal-Planner-Backend/pkg/user"
)

// sendMail is swappable in tests; plan-ready notifications are best effort.
var sendMail = mailing.SendMail

type (
	// PointBudget is the slice of the budget tracker the plan service needs
	// to gate new generations.
	PointBudget interface {
		Remaining() float64
	}

	PlanService interface {
		GeneratePlan(ctx context.Context, userID string, req domain.GeneratePlanRequest) (domain.GeneratePlanResponse, error)
		GetPlan(ctx context.Context, planID string) (*entities.WeeklyPlan, error)
		GetShoppingList(ctx context.Context, planID string) (domain.ShoppingListResponse, error)
		UpdateShoppingListItems(ctx context.Context, planID string, req domain.UpdateShoppingListRequest) (domain.UpdateShoppingListResponse, error)
		ProcessPlan(ctx context.Context, planID string) error
	}

	planService struct {
		planRepository PlanRepository
		userRepository user.UserRepository
		pantryService  pantry.PantryService
		assembler      Assembler
		budget         PointBudget
		perPlanCap     float64
		identity       string
	}
)

func NewPlanService(
	planRepository PlanRepository,
	userRepository user.UserRepository,
	pantryService pantry.PantryService,
	assembler Assembler,
	budget PointBudget,
	perPlanCap float64,
) PlanService {
	return &planService{
		planRepository: planRepository,
		userRepository: userRepository,
		pantryService:  pantryService,
		assembler:      assembler,
		budget:         budget,
		perPlanCap:     perPlanCap,
		identity:       uuid.NewString(),
	}
}

// GeneratePlan creates a pending plan record and kicks off assembly in the
// background. The caller gets the plan id right away and polls for the
// finalized state.
func (s *planService) GeneratePlan(ctx context.Context, userID string, req domain.GeneratePlanRequest) (domain.GeneratePlanResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.GeneratePlanResponse{}, domain.ErrParseUUID
	}

	if s.budget.Remaining() < s.perPlanCap {
		return domain.GeneratePlanResponse{}, domain.ErrBudgetExhausted
	}

	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		return domain.GeneratePlanResponse{}, err
	}

	days := req.Days
	if days == 0 {
		days = 7
	}

	startDate := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return domain.GeneratePlanResponse{}, err
		}
	}
	endDate := startDate.AddDate(0, 0, days-1)

	plan := &entities.WeeklyPlan{
		UserID:       uid,
		StartDate:    startDate,
		EndDate:      endDate,
		State:        entities.PlanStatePending,
		Days:         entities.PlanDays{},
		ShoppingList: entities.ShoppingList{},
	}
	if err := s.planRepository.CreatePlan(ctx, plan); err != nil {
		return domain.GeneratePlanResponse{}, err
	}

	planID := plan.ID.String()
	go func() {
		time.Sleep(time.Second)
		if err := s.claimAndProcess(context.Background(), planID); err != nil {
			log.Printf("plan %s processing failed: %v", planID, err)
		}
	}()

	return domain.GeneratePlanResponse{
		PlanID:          planID,
		State:           "PENDING",
		RemainingPoints: s.budget.Remaining(),
		PerPlanCap:      s.perPlanCap,
	}, nil
}

// claimAndProcess takes the durable claim before assembling, so the deferred
// generation trigger and a recovery sweep can never both spend catalog points
// on the same plan. Losing the claim race is not an error: the holder will
// finish the job.
func (s *planService) claimAndProcess(ctx context.Context, planID string) error {
	claimed, err := s.planRepository.ClaimPlan(ctx, planID, s.identity, claimTTL)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}
	defer func() {
		if err := s.planRepository.ReleaseClaim(ctx, planID, s.identity); err != nil {
			log.Printf("releasing claim on plan %s failed: %v", planID, err)
		}
	}()

	return s.ProcessPlan(ctx, planID)
}

// ProcessPlan runs the assembly for one pending plan. It is invoked from
// the generation goroutine and again by the recovery worker, so plans no
// longer pending are skipped without error.
func (s *planService) ProcessPlan(ctx context.Context, planID string) error {
	plan, err := s.planRepository.GetPlanByID(ctx, planID)
	if err != nil {
		if err == domain.ErrPlanNotFound {
			return nil
		}
		return err
	}
	if plan.State != entities.PlanStatePending {
		return nil
	}

	owner, err := s.userRepository.GetUserByID(ctx, plan.UserID.String())
	if err != nil {
		if err == domain.ErrUserNotFound {
			log.Printf("cancelling plan %s: owner no longer exists", planID)
			return s.planRepository.CancelPlan(ctx, planID)
		}
		return err
	}

	assembled, err := s.assembler.AssembleWeek(ctx, owner, plan.StartDate, plan.EndDate)
	if err != nil {
		log.Printf("cancelling plan %s: %v", planID, err)
		if cancelErr := s.planRepository.CancelPlan(ctx, planID); cancelErr != nil {
			return cancelErr
		}
		return err
	}

	finalized, err := s.planRepository.FinalizePlan(ctx, planID, assembled.Days, assembled.ShoppingList)
	if err != nil {
		return err
	}
	if !finalized {
		// a racing run cancelled or finalized the plan first; its outcome
		// stands and there is nothing to announce
		return nil
	}

	go func() {
		subject := "Tu plan semanal está listo"
		body := fmt.Sprintf("<p>Hola %s,</p><p>Tu plan de comidas del %s al %s ya está disponible.</p>",
			owner.Name, plan.StartDate.Format("2006-01-02"), plan.EndDate.Format("2006-01-02"))
		if err := sendMail(owner.Email, subject, body); err != nil {
			log.Printf("plan ready mail to %s failed: %v", owner.Email, err)
		}
	}()

	return nil
}

func (s *planService) GetPlan(ctx context.Context, planID string) (*entities.WeeklyPlan, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.planRepository.GetPlanByID(ctx, planID)
}

func (s *planService) GetShoppingList(ctx context.Context, planID string) (domain.ShoppingListResponse, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return domain.ShoppingListResponse{}, err
	}
	return domain.ShoppingListResponse{
		PlanID:       plan.ID.String(),
		ShoppingList: plan.ShoppingList,
	}, nil
}

// UpdateShoppingListItems toggles purchase marks by item name. Items newly
// marked purchased are also appended to the owner's pantry so the next plan
// sees them; pantry persistence failures do not fail the update.
func (s *planService) UpdateShoppingListItems(ctx context.Context, planID string, req domain.UpdateShoppingListRequest) (domain.UpdateShoppingListResponse, error) {
	if len(req.Items) == 0 {
		return domain.UpdateShoppingListResponse{}, domain.ErrNoItemsProvided
	}

	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return domain.UpdateShoppingListResponse{}, err
	}

	var (
		updated  int
		notFound []string
		staged   []*entities.PantryItem
	)

	for _, update := range req.Items {
		normalized := strings.ToLower(strings.TrimSpace(update.Name))

		found := false
		for i := range plan.ShoppingList {
			item := &plan.ShoppingList[i]
			if strings.ToLower(strings.TrimSpace(item.Name)) != normalized {
				continue
			}
			found = true

			if update.Purchased && !item.Purchased {
				category := item.Category
				if category == "" {
					category = domain.PantryCategoryUnknown
				}
				staged = append(staged, &entities.PantryItem{
					Name:            item.Name,
					Category:        category,
					Quantity:        item.Quantity,
					Unit:            item.Unit,
					StorageLocation: domain.PantryStorageUnknown,
				})
			}
			item.Purchased = update.Purchased
			updated++
			break
		}
		if !found {
			notFound = append(notFound, update.Name)
		}
	}

	if err := s.planRepository.UpdateShoppingList(ctx, planID, plan.ShoppingList); err != nil {
		return domain.UpdateShoppingListResponse{}, err
	}

	added := 0
	if len(staged) > 0 {
		if err := s.pantryService.AddItems(ctx, plan.UserID.String(), staged); err != nil {
			log.Printf("failed to add purchased items to pantry for plan %s: %v", planID, err)
		} else {
			added = len(staged)
		}
	}

	return domain.UpdateShoppingListResponse{
		UpdatedItems:      updated,
		AddedToPantry:     added,
		ItemsNotFound:     notFound,
		UpdatedAtPlanTime: time.Now(),
	}, nil
}
