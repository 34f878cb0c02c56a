package plan

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

func TestMain(m *testing.M) {
	sendMail = func(string, string, string) error { return nil }
	os.Exit(m.Run())
}

type fakePlanRepo struct {
	mu             sync.Mutex
	plans          map[string]*entities.WeeklyPlan
	beforeFinalize func()
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*entities.WeeklyPlan)}
}

func (r *fakePlanRepo) CreatePlan(_ context.Context, plan *entities.WeeklyPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	plan.CreatedAt = time.Now()
	r.plans[plan.ID.String()] = plan
	return nil
}

func (r *fakePlanRepo) GetPlanByID(_ context.Context, planID string) (*entities.WeeklyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) FinalizePlan(_ context.Context, planID string, days entities.PlanDays, list entities.ShoppingList) (bool, error) {
	if r.beforeFinalize != nil {
		r.beforeFinalize()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if !ok || plan.State != entities.PlanStatePending {
		return false, nil
	}
	plan.State = entities.PlanStateFinalized
	plan.Days = days
	plan.ShoppingList = list
	return true, nil
}

func (r *fakePlanRepo) CancelPlan(_ context.Context, planID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if !ok || plan.State != entities.PlanStatePending {
		return nil
	}
	plan.State = entities.PlanStateCancelled
	return nil
}

func (r *fakePlanRepo) UpdateShoppingList(_ context.Context, planID string, list entities.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if !ok {
		return domain.ErrPlanNotFound
	}
	plan.ShoppingList = list
	return nil
}

func (r *fakePlanRepo) ListPendingPlans(_ context.Context, limit int) ([]*entities.WeeklyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*entities.WeeklyPlan
	for _, plan := range r.plans {
		claimLive := plan.ClaimedBy != "" && plan.ClaimExpiry.After(time.Now())
		if plan.State == entities.PlanStatePending && !claimLive {
			copied := *plan
			pending = append(pending, &copied)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (r *fakePlanRepo) ClaimPlan(_ context.Context, planID, claimant string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if !ok || plan.State != entities.PlanStatePending {
		return false, nil
	}
	claimLive := plan.ClaimedBy != "" && plan.ClaimedBy != claimant && plan.ClaimExpiry.After(time.Now())
	if claimLive {
		return false, nil
	}
	plan.ClaimedBy = claimant
	plan.ClaimExpiry = time.Now().Add(ttl)
	return true, nil
}

func (r *fakePlanRepo) ReleaseClaim(_ context.Context, planID, claimant string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[planID]
	if ok && plan.ClaimedBy == claimant {
		plan.ClaimedBy = ""
		plan.ClaimExpiry = time.Time{}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entities.User
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	r.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*entities.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) UpdatePreferences(_ context.Context, userID string, preferences entities.Preferences) error {
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Preferences = preferences
	return nil
}

type fakePantryService struct {
	mu    sync.Mutex
	added []*entities.PantryItem
	err   error
}

func (s *fakePantryService) AddItem(_ context.Context, _ string, _ domain.AddPantryItemRequest) (domain.PantryItemResponse, error) {
	return domain.PantryItemResponse{}, nil
}

func (s *fakePantryService) AddItems(_ context.Context, _ string, items []*entities.PantryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, items...)
	return nil
}

func (s *fakePantryService) GetItems(_ context.Context, _ string) ([]domain.PantryItemResponse, error) {
	return nil, nil
}

func (s *fakePantryService) UpdateItem(_ context.Context, _, _ string, _ domain.UpdatePantryItemRequest) (domain.PantryItemResponse, error) {
	return domain.PantryItemResponse{}, nil
}

func (s *fakePantryService) DeleteItem(_ context.Context, _, _ string) error {
	return nil
}

type fakeAssembler struct {
	week domain.AssembledWeek
	err  error
}

func (a *fakeAssembler) AssembleWeek(_ context.Context, _ *entities.User, _, _ time.Time) (domain.AssembledWeek, error) {
	return a.week, a.err
}

type fakeBudget struct{ remaining float64 }

func (b *fakeBudget) Remaining() float64 { return b.remaining }

type serviceFixture struct {
	service   PlanService
	planRepo  *fakePlanRepo
	userRepo  *fakeUserRepo
	pantry    *fakePantryService
	assembler *fakeAssembler
	budget    *fakeBudget
	owner     *entities.User
}

func newServiceFixture() *serviceFixture {
	owner := &entities.User{
		ID:    uuid.New(),
		Name:  "Ana",
		Email: "ana@example.com",
	}
	f := &serviceFixture{
		planRepo:  newFakePlanRepo(),
		userRepo:  &fakeUserRepo{users: map[string]*entities.User{owner.ID.String(): owner}},
		pantry:    &fakePantryService{},
		assembler: &fakeAssembler{},
		budget:    &fakeBudget{remaining: 150},
		owner:     owner,
	}
	f.service = NewPlanService(f.planRepo, f.userRepo, f.pantry, f.assembler, f.budget, 30)
	return f
}

func TestGeneratePlanCreatesPendingPlan(t *testing.T) {
	f := newServiceFixture()

	res, err := f.service.GeneratePlan(context.Background(), f.owner.ID.String(), domain.GeneratePlanRequest{
		Days:      5,
		StartDate: "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", res.State)
	assert.Equal(t, 30.0, res.PerPlanCap)

	plan, err := f.planRepo.GetPlanByID(context.Background(), res.PlanID)
	require.NoError(t, err)
	assert.Equal(t, entities.PlanStatePending, plan.State)
	assert.Equal(t, f.owner.ID, plan.UserID)
	assert.Equal(t, "2026-03-02", plan.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-03-06", plan.EndDate.Format("2006-01-02"))
}

func TestGeneratePlanDefaultsToSevenDays(t *testing.T) {
	f := newServiceFixture()

	res, err := f.service.GeneratePlan(context.Background(), f.owner.ID.String(), domain.GeneratePlanRequest{})
	require.NoError(t, err)

	plan, err := f.planRepo.GetPlanByID(context.Background(), res.PlanID)
	require.NoError(t, err)
	assert.Equal(t, plan.StartDate.AddDate(0, 0, 6), plan.EndDate)
}

func TestGeneratePlanRejectsBadUserID(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GeneratePlan(context.Background(), "not-a-uuid", domain.GeneratePlanRequest{})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestGeneratePlanUnknownUser(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GeneratePlan(context.Background(), uuid.NewString(), domain.GeneratePlanRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGeneratePlanRefusesWhenBudgetBelowCap(t *testing.T) {
	f := newServiceFixture()
	f.budget.remaining = 29

	_, err := f.service.GeneratePlan(context.Background(), f.owner.ID.String(), domain.GeneratePlanRequest{})
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)
}

func pendingPlan(f *serviceFixture) *entities.WeeklyPlan {
	plan := &entities.WeeklyPlan{
		UserID:    f.owner.ID,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		State:     entities.PlanStatePending,
	}
	f.planRepo.CreatePlan(context.Background(), plan)
	return plan
}

func TestProcessPlanFinalizesOnSuccess(t *testing.T) {
	f := newServiceFixture()
	f.assembler.week = domain.AssembledWeek{
		Days: entities.PlanDays{{Date: time.Now()}},
		ShoppingList: entities.ShoppingList{
			{Name: "tomate", Quantity: 2, Unit: "unidades", Category: "vegetales"},
		},
	}
	plan := pendingPlan(f)

	err := f.service.ProcessPlan(context.Background(), plan.ID.String())
	require.NoError(t, err)

	stored, err := f.planRepo.GetPlanByID(context.Background(), plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.PlanStateFinalized, stored.State)
	assert.Len(t, stored.Days, 1)
	assert.Len(t, stored.ShoppingList, 1)
}

func TestProcessPlanCancelsOnAssemblyError(t *testing.T) {
	f := newServiceFixture()
	f.assembler.err = domain.ErrInsufficientRecipes
	plan := pendingPlan(f)

	err := f.service.ProcessPlan(context.Background(), plan.ID.String())
	assert.ErrorIs(t, err, domain.ErrInsufficientRecipes)

	stored, err := f.planRepo.GetPlanByID(context.Background(), plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.PlanStateCancelled, stored.State)
}

func TestClaimAndProcessRespectsForeignClaim(t *testing.T) {
	f := newServiceFixture()
	f.assembler.week = domain.AssembledWeek{Days: entities.PlanDays{{Date: time.Now()}}}
	plan := pendingPlan(f)

	claimed, err := f.planRepo.ClaimPlan(context.Background(), plan.ID.String(), "sweep-worker", time.Hour)
	require.NoError(t, err)
	require.True(t, claimed)

	// the deferred trigger loses the claim race and must not assemble
	svc := f.service.(*planService)
	require.NoError(t, svc.claimAndProcess(context.Background(), plan.ID.String()))

	stored, err := f.planRepo.GetPlanByID(context.Background(), plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.PlanStatePending, stored.State)
}

func TestClaimAndProcessFinalizesAndReleases(t *testing.T) {
	f := newServiceFixture()
	f.assembler.week = domain.AssembledWeek{Days: entities.PlanDays{{Date: time.Now()}}}
	plan := pendingPlan(f)

	svc := f.service.(*planService)
	require.NoError(t, svc.claimAndProcess(context.Background(), plan.ID.String()))

	stored, err := f.planRepo.GetPlanByID(context.Background(), plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.PlanStateFinalized, stored.State)
	assert.Empty(t, stored.ClaimedBy)
}

func TestProcessPlanSendsMailOnFinalize(t *testing.T) {
	mailed := make(chan string, 1)
	restore := sendMail
	sendMail = func(to, _, _ string) error {
		mailed <- to
		return nil
	}
	defer func() { sendMail = restore }()

	f := newServiceFixture()
	f.assembler.week = domain.AssembledWeek{Days: entities.PlanDays{{Date: time.Now()}}}
	plan := pendingPlan(f)

	require.NoError(t, f.service.ProcessPlan(context.Background(), plan.ID.String()))

	select {
	case to := <-mailed:
		assert.Equal(t, f.owner.Email, to)
	case <-time.After(time.Second):
		t.Fatal("expected a plan ready mail")
	}
}

func TestProcessPlanSkipsMailWhenFinalizeLosesRace(t *testing.T) {
	mails := 0
	restore := sendMail
	sendMail = func(_, _, _ string) error {
		mails++
		return nil
	}
	defer func() { sendMail = restore }()

	f := newServiceFixture()
	f.assembler.week = domain.AssembledWeek{Days: entities.PlanDays{{Date: time.Now()}}}
	plan := pendingPlan(f)

	// a racing run cancels the plan between the state check and the flip
	f.planRepo.beforeFinalize = func() {
		f.planRepo.CancelPlan(context.Background(), plan.ID.String())
	}

	require.NoError(t, f.service.ProcessPlan(context.Background(), plan.ID.String()))

	stored, err := f.planRepo.GetPlanByID(context.Background(), plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.PlanStateCancelled, stored.State)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, mails)
}

func TestProcessPlanSkipsNonPending(t *testing.T) {
	f := newServiceFixture()
	f.assembler.err = domain.ErrInsufficientRecipes
	plan := pendingPlan(f)
	plan.State = entities.PlanStateFinalized

	assert.NoError(t, f.service.ProcessPlan(context.Background(), plan.ID.String()))
	assert.NoError(t, f.service.ProcessPlan(context.Background(), uuid.NewString()))
}

func TestUpdateShoppingListMarksAndAppendsToPantry(t *testing.T) {
	f := newServiceFixture()
	plan := pendingPlan(f)
	f.planRepo.UpdateShoppingList(context.Background(), plan.ID.String(), entities.ShoppingList{
		{Name: "Tomate", Quantity: 3, Unit: "unidades", Category: "vegetales"},
		{Name: "arroz", Quantity: 1, Unit: "kg", Category: "granos"},
	})

	res, err := f.service.UpdateShoppingListItems(context.Background(), plan.ID.String(), domain.UpdateShoppingListRequest{
		Items: []domain.ShoppingItemUpdate{
			{Name: "tomate", Purchased: true},
			{Name: "quinoa", Purchased: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.UpdatedItems)
	assert.Equal(t, 1, res.AddedToPantry)
	assert.Equal(t, []string{"quinoa"}, res.ItemsNotFound)

	stored, _ := f.planRepo.GetPlanByID(context.Background(), plan.ID.String())
	assert.True(t, stored.ShoppingList[0].Purchased)
	assert.False(t, stored.ShoppingList[1].Purchased)

	require.Len(t, f.pantry.added, 1)
	assert.Equal(t, "Tomate", f.pantry.added[0].Name)
	assert.Equal(t, "vegetales", f.pantry.added[0].Category)
	assert.Equal(t, domain.PantryStorageUnknown, f.pantry.added[0].StorageLocation)
}

func TestUpdateShoppingListPantryFailureIsNotFatal(t *testing.T) {
	f := newServiceFixture()
	f.pantry.err = assert.AnError
	plan := pendingPlan(f)
	f.planRepo.UpdateShoppingList(context.Background(), plan.ID.String(), entities.ShoppingList{
		{Name: "pan", Quantity: 1, Unit: "pieza", Category: "granos"},
	})

	res, err := f.service.UpdateShoppingListItems(context.Background(), plan.ID.String(), domain.UpdateShoppingListRequest{
		Items: []domain.ShoppingItemUpdate{{Name: "pan", Purchased: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.UpdatedItems)
	assert.Equal(t, 0, res.AddedToPantry)
}

func TestUpdateShoppingListAlreadyPurchasedNotReAdded(t *testing.T) {
	f := newServiceFixture()
	plan := pendingPlan(f)
	f.planRepo.UpdateShoppingList(context.Background(), plan.ID.String(), entities.ShoppingList{
		{Name: "leche", Quantity: 1, Unit: "l", Category: "lácteos", Purchased: true},
	})

	res, err := f.service.UpdateShoppingListItems(context.Background(), plan.ID.String(), domain.UpdateShoppingListRequest{
		Items: []domain.ShoppingItemUpdate{{Name: "leche", Purchased: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.UpdatedItems)
	assert.Equal(t, 0, res.AddedToPantry)
	assert.Empty(t, f.pantry.added)
}
