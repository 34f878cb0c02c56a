package entities

import (
	"github.com/google/uuid"
)

type PantryItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"ingrediente_id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"nombre"`
	Category        string    `json:"categoria"`
	Quantity        float64   `json:"cantidad"`
	Unit            string    `json:"unidad"`
	StorageLocation string    `json:"almacenamiento"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
