package domain

import (
	"errors"

	"Meal-Planner-Backend/entities"
)

var (
	MessageSuccessRegister          = "user registered successfully"
	MessageSuccessLogin             = "login success"
	MessageSuccessGetMe             = "user profile retrieved successfully"
	MessageSuccessUpdatePreferences = "preferences updated successfully"

	MessageFailedRegister          = "failed to register user"
	MessageFailedLogin             = "failed to login"
	MessageFailedGetMe             = "failed to retrieve user profile"
	MessageFailedUpdatePreferences = "failed to update preferences"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdatePreferencesRequest struct {
		Diets                []string `json:"dietas" validate:"omitempty,dive,min=1"`
		Allergies            []string `json:"alergias" validate:"omitempty,dive,min=1"`
		Intolerances         []string `json:"intolerancias" validate:"omitempty,dive,min=1"`
		PreferredIngredients []string `json:"ingredientes_preferidos"`
		AvoidedIngredients   []string `json:"ingredientes_evitados"`
		MaxPrepTimeMinutes   int      `json:"tiempo_max_preparacion" validate:"omitempty,min=1"`
		PreferredPrepMethods []string `json:"metodos_preparacion_preferidos"`
		AvoidedPrepMethods   []string `json:"metodos_preparacion_evitados"`
		DailyCalories        int      `json:"calorias_diarias" validate:"omitempty,min=1"`
		LowIn                []string `json:"bajo_en"`
		AvailableEquipment   []string `json:"utensilios_disponibles"`
	}

	MeResponse struct {
		ID          string               `json:"id"`
		Name        string               `json:"name"`
		Email       string               `json:"email"`
		Preferences entities.Preferences `json:"preferencias"`
	}
)
