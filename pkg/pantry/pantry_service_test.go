package pantry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

type fakePantryRepo struct {
	items map[string]*entities.PantryItem
}

func newFakePantryRepo() *fakePantryRepo {
	return &fakePantryRepo{items: make(map[string]*entities.PantryItem)}
}

func (r *fakePantryRepo) CreatePantryItem(_ context.Context, item *entities.PantryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakePantryRepo) CreatePantryItems(ctx context.Context, items []*entities.PantryItem) error {
	for _, item := range items {
		if err := r.CreatePantryItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePantryRepo) GetPantryItems(_ context.Context, userID string) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakePantryRepo) GetPantryItemByID(_ context.Context, userID, itemID string) (*entities.PantryItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.UserID.String() != userID {
		return nil, domain.ErrPantryItemNotFound
	}
	return item, nil
}

func (r *fakePantryRepo) UpdatePantryItem(_ context.Context, item *entities.PantryItem) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakePantryRepo) DeletePantryItem(_ context.Context, userID, itemID string) error {
	item, ok := r.items[itemID]
	if !ok || item.UserID.String() != userID {
		return domain.ErrPantryItemNotFound
	}
	delete(r.items, itemID)
	return nil
}

func TestAddItemDefaultsCategoryAndStorage(t *testing.T) {
	svc := NewPantryService(newFakePantryRepo())
	userID := uuid.NewString()

	res, err := svc.AddItem(context.Background(), userID, domain.AddPantryItemRequest{
		Name:     "  Tomate  ",
		Quantity: 3,
		Unit:     "unidades",
	})
	require.NoError(t, err)

	assert.Equal(t, "Tomate", res.Name)
	assert.Equal(t, domain.PantryCategoryUnknown, res.Category)
	assert.Equal(t, domain.PantryStorageUnknown, res.StorageLocation)
}

func TestAddItemRejectsBadUserID(t *testing.T) {
	svc := NewPantryService(newFakePantryRepo())

	_, err := svc.AddItem(context.Background(), "nope", domain.AddPantryItemRequest{
		Name: "tomate", Quantity: 1, Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestAddItemsAssignsOwner(t *testing.T) {
	repo := newFakePantryRepo()
	svc := NewPantryService(repo)
	userID := uuid.New()

	err := svc.AddItems(context.Background(), userID.String(), []*entities.PantryItem{
		{Name: "arroz", Quantity: 1, Unit: "kg"},
		{Name: "pan", Quantity: 2, Unit: "piezas"},
	})
	require.NoError(t, err)

	items, err := svc.GetItems(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpdateItemPartialFields(t *testing.T) {
	repo := newFakePantryRepo()
	svc := NewPantryService(repo)
	userID := uuid.NewString()

	created, err := svc.AddItem(context.Background(), userID, domain.AddPantryItemRequest{
		Name: "leche", Category: "lácteos", Quantity: 1, Unit: "l",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(context.Background(), userID, created.ID, domain.UpdatePantryItemRequest{
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, updated.Quantity)
	assert.Equal(t, "leche", updated.Name)
	assert.Equal(t, "lácteos", updated.Category)
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := NewPantryService(newFakePantryRepo())

	_, err := svc.UpdateItem(context.Background(), uuid.NewString(), uuid.NewString(), domain.UpdatePantryItemRequest{})
	assert.ErrorIs(t, err, domain.ErrPantryItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	repo := newFakePantryRepo()
	svc := NewPantryService(repo)
	userID := uuid.NewString()

	created, err := svc.AddItem(context.Background(), userID, domain.AddPantryItemRequest{
		Name: "queso", Quantity: 1, Unit: "pieza",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(context.Background(), userID, created.ID))
	assert.ErrorIs(t, svc.DeleteItem(context.Background(), userID, created.ID), domain.ErrPantryItemNotFound)
}
