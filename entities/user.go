package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string      `json:"name"`
	Email       string      `gorm:"uniqueIndex" json:"email"`
	Password    string      `json:"-"`
	Role        string      `json:"role"`
	IsActive    bool        `json:"is_active"`
	Preferences Preferences `gorm:"type:jsonb" json:"preferencias"`

	PantryItems []*PantryItem `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

// Preferences mirrors the dietary profile used to build catalog queries.
// Absent fields are omitted from queries, so zero values are meaningful.
type Preferences struct {
	Diets                []string       `json:"dietas,omitempty"`
	Allergies            []string       `json:"alergias,omitempty"`
	Intolerances         []string       `json:"intolerancias,omitempty"`
	PreferredIngredients []string       `json:"ingredientes_preferidos,omitempty"`
	AvoidedIngredients   []string       `json:"ingredientes_evitados,omitempty"`
	MaxPrepTimeMinutes   int            `json:"tiempo_max_preparacion,omitempty"`
	PreferredPrepMethods []string       `json:"metodos_preparacion_preferidos,omitempty"`
	AvoidedPrepMethods   []string       `json:"metodos_preparacion_evitados,omitempty"`
	NutritionGoals       NutritionGoals `json:"objetivos_nutricionales,omitempty"`
	AvailableEquipment   []string       `json:"utensilios_disponibles,omitempty"`
}

type NutritionGoals struct {
	DailyCalories int      `json:"calorias_diarias,omitempty"`
	LowIn         []string `json:"bajo_en,omitempty"`
}

func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = Preferences{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return errors.New("unsupported type for preferences column")
		}
	}
	return json.Unmarshal(data, p)
}
