package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	PlanStatePending   = "pending"
	PlanStateFinalized = "finalized"
	PlanStateCancelled = "cancelled"
)

type WeeklyPlan struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"plan_id"`
	UserID       uuid.UUID    `json:"usuario_id"`
	StartDate    time.Time    `gorm:"type:date" json:"fecha_inicio"`
	EndDate      time.Time    `gorm:"type:date" json:"fecha_fin"`
	State        string       `json:"estado"`
	Days         PlanDays     `gorm:"type:jsonb" json:"dias"`
	ShoppingList ShoppingList `gorm:"type:jsonb" json:"lista_compras"`

	// Recovery-sweep claim. Survives restarts so two sweeps never pick up
	// the same stuck plan; an expired claim is treated as released.
	ClaimedBy   string    `json:"-"`
	ClaimExpiry time.Time `gorm:"type:timestamp" json:"-"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type PlanDay struct {
	Date  time.Time  `json:"fecha"`
	Meals []PlanMeal `json:"comidas"`
}

type PlanMeal struct {
	Slot               string              `json:"tipo"`
	RecipeID           int                 `json:"receta_id"`
	RecipeName         string              `json:"nombre_receta"`
	MissingIngredients []MissingIngredient `json:"ingredientes_faltantes"`
}

type MissingIngredient struct {
	Name     string  `json:"nombre"`
	Quantity float64 `json:"cantidad"`
	Unit     string  `json:"unidad"`
}

type ShoppingItem struct {
	Name      string  `json:"nombre"`
	Quantity  float64 `json:"cantidad"`
	Unit      string  `json:"unidad"`
	Category  string  `json:"categoria"`
	Purchased bool    `json:"comprado"`
}

type (
	PlanDays     []PlanDay
	ShoppingList []ShoppingItem
)

func (d PlanDays) Value() (driver.Value, error) {
	if d == nil {
		d = PlanDays{}
	}
	return json.Marshal(d)
}

func (d *PlanDays) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (l ShoppingList) Value() (driver.Value, error) {
	if l == nil {
		l = ShoppingList{}
	}
	return json.Marshal(l)
}

func (l *ShoppingList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return errors.New("unsupported type for jsonb column")
		}
	}
	return json.Unmarshal(data, dest)
}
