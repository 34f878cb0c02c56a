package domain

import (
	"errors"
	"time"
)

const (
	PantryCategoryUnknown = "otros"
	PantryStorageUnknown  = "desconocido"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessUpdatePantryItem = "pantry item updated successfully"
	MessageSuccessDeletePantryItem = "pantry item deleted successfully"
	MessageSuccessGetPantry        = "pantry retrieved successfully"

	MessageFailedAddPantryItem    = "failed to add pantry item"
	MessageFailedUpdatePantryItem = "failed to update pantry item"
	MessageFailedDeletePantryItem = "failed to delete pantry item"
	MessageFailedGetPantry        = "failed to retrieve pantry"

	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

type (
	AddPantryItemRequest struct {
		Name            string  `json:"nombre" validate:"required"`
		Category        string  `json:"categoria"`
		Quantity        float64 `json:"cantidad" validate:"required,gt=0"`
		Unit            string  `json:"unidad" validate:"required"`
		StorageLocation string  `json:"almacenamiento"`
	}

	UpdatePantryItemRequest struct {
		Name            string  `json:"nombre" validate:"omitempty"`
		Category        string  `json:"categoria" validate:"omitempty"`
		Quantity        float64 `json:"cantidad" validate:"omitempty,gt=0"`
		Unit            string  `json:"unidad" validate:"omitempty"`
		StorageLocation string  `json:"almacenamiento" validate:"omitempty"`
	}

	PantryItemResponse struct {
		ID              string    `json:"ingrediente_id"`
		Name            string    `json:"nombre"`
		Category        string    `json:"categoria"`
		Quantity        float64   `json:"cantidad"`
		Unit            string    `json:"unidad"`
		StorageLocation string    `json:"almacenamiento"`
		UpdatedAt       time.Time `json:"fecha_actualizacion"`
	}
)
