package pantry

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

type (
	PantryService interface {
		AddItem(ctx context.Context, userID string, req domain.AddPantryItemRequest) (domain.PantryItemResponse, error)
		AddItems(ctx context.Context, userID string, items []*entities.PantryItem) error
		GetItems(ctx context.Context, userID string) ([]domain.PantryItemResponse, error)
		UpdateItem(ctx context.Context, userID, itemID string, req domain.UpdatePantryItemRequest) (domain.PantryItemResponse, error)
		DeleteItem(ctx context.Context, userID, itemID string) error
	}

	pantryService struct {
		pantryRepository PantryRepository
	}
)

func NewPantryService(pantryRepository PantryRepository) PantryService {
	return &pantryService{pantryRepository: pantryRepository}
}

func (s *pantryService) AddItem(ctx context.Context, userID string, req domain.AddPantryItemRequest) (domain.PantryItemResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrParseUUID
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.PantryCategoryUnknown
	}
	storage := strings.TrimSpace(req.StorageLocation)
	if storage == "" {
		storage = domain.PantryStorageUnknown
	}

	item := &entities.PantryItem{
		UserID:          uid,
		Name:            strings.TrimSpace(req.Name),
		Category:        category,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		StorageLocation: storage,
	}
	if err := s.pantryRepository.CreatePantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}

	return toPantryItemResponse(item), nil
}

// AddItems persists purchased shopping-list items in one batch. Used by the
// shopping list update flow, which already fills in defaults.
func (s *pantryService) AddItems(ctx context.Context, userID string, items []*entities.PantryItem) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	for _, item := range items {
		item.UserID = uid
	}
	return s.pantryRepository.CreatePantryItems(ctx, items)
}

func (s *pantryService) GetItems(ctx context.Context, userID string) ([]domain.PantryItemResponse, error) {
	items, err := s.pantryRepository.GetPantryItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toPantryItemResponse(item))
	}
	return responses, nil
}

func (s *pantryService) UpdateItem(ctx context.Context, userID, itemID string, req domain.UpdatePantryItemRequest) (domain.PantryItemResponse, error) {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, userID, itemID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	if req.Name != "" {
		item.Name = strings.TrimSpace(req.Name)
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.StorageLocation != "" {
		item.StorageLocation = req.StorageLocation
	}

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}
	return toPantryItemResponse(item), nil
}

func (s *pantryService) DeleteItem(ctx context.Context, userID, itemID string) error {
	return s.pantryRepository.DeletePantryItem(ctx, userID, itemID)
}

func toPantryItemResponse(item *entities.PantryItem) domain.PantryItemResponse {
	return domain.PantryItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Category:        item.Category,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		StorageLocation: item.StorageLocation,
		UpdatedAt:       item.UpdatedAt,
	}
}
