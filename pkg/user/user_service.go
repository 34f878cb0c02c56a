package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.MeResponse, error)
		UpdatePreferences(ctx context.Context, userID string, req domain.UpdatePreferencesRequest) (domain.MeResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
		IsActive: true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.MeResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.MeResponse{}, err
	}
	return toMeResponse(user), nil
}

func (s *userService) UpdatePreferences(ctx context.Context, userID string, req domain.UpdatePreferencesRequest) (domain.MeResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.MeResponse{}, err
	}

	preferences := entities.Preferences{
		Diets:                req.Diets,
		Allergies:            req.Allergies,
		Intolerances:         req.Intolerances,
		PreferredIngredients: req.PreferredIngredients,
		AvoidedIngredients:   req.AvoidedIngredients,
		MaxPrepTimeMinutes:   req.MaxPrepTimeMinutes,
		PreferredPrepMethods: req.PreferredPrepMethods,
		AvoidedPrepMethods:   req.AvoidedPrepMethods,
		NutritionGoals: entities.NutritionGoals{
			DailyCalories: req.DailyCalories,
			LowIn:         req.LowIn,
		},
		AvailableEquipment: req.AvailableEquipment,
	}

	if err := s.userRepository.UpdatePreferences(ctx, userID, preferences); err != nil {
		return domain.MeResponse{}, err
	}

	user.Preferences = preferences
	return toMeResponse(user), nil
}

func toMeResponse(user *entities.User) domain.MeResponse {
	return domain.MeResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Preferences: user.Preferences,
	}
}
