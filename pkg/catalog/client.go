package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

type (
	// CatalogService wraps the external recipe API behind the daily point
	// budget, the result caches and the local fallback recipes.
	CatalogService interface {
		SearchRecipesForSlot(ctx context.Context, user *entities.User, slot string, count int) ([]domain.RecipeSummary, float64, error)
		GetRecipeDetail(ctx context.Context, recipeID int) (domain.RecipeDetail, error)

		// Raw passthrough used by the recipe-search proxy endpoints.
		SearchRaw(ctx context.Context, req domain.RecipeSearchRequest) (json.RawMessage, error)
		DetailRaw(ctx context.Context, recipeID int) (json.RawMessage, error)
		ByIngredientsRaw(ctx context.Context, ingredients string, number int) (json.RawMessage, error)
	}

	catalogService struct {
		baseURL     string
		apiKeys     []string
		httpClient  *http.Client
		budget      *BudgetTracker
		searchCache Cache
		detailCache Cache
	}
)

func NewCatalogService(baseURL string, apiKeys []string, budget *BudgetTracker, searchCache, detailCache Cache) CatalogService {
	return &catalogService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKeys:     apiKeys,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		budget:      budget,
		searchCache: searchCache,
		detailCache: detailCache,
	}
}

// apiKey picks one configured key at random per call to spread quota usage.
func (s *catalogService) apiKey() string {
	if len(s.apiKeys) == 0 {
		return ""
	}
	return s.apiKeys[rand.Intn(len(s.apiKeys))]
}

type searchAPIResponse struct {
	Results []struct {
		ID                int     `json:"id"`
		Title             string  `json:"title"`
		Image             string  `json:"image"`
		ReadyInMinutes    int     `json:"readyInMinutes"`
		Servings          int     `json:"servings"`
		SourceURL         string  `json:"sourceUrl"`
		Vegetarian        bool    `json:"vegetarian"`
		Vegan             bool    `json:"vegan"`
		GlutenFree        bool    `json:"glutenFree"`
		DairyFree         bool    `json:"dairyFree"`
		MissedIngredients []apiIngredient `json:"missedIngredients"`
		UsedIngredients   []apiIngredient `json:"usedIngredients"`
	} `json:"results"`
}

type apiIngredient struct {
	Name      string  `json:"name"`
	NameClean string  `json:"nameClean"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
}

type detailAPIResponse struct {
	ID                  int             `json:"id"`
	Title               string          `json:"title"`
	Image               string          `json:"image"`
	ReadyInMinutes      int             `json:"readyInMinutes"`
	Servings            int             `json:"servings"`
	SourceURL           string          `json:"sourceUrl"`
	Vegetarian          bool            `json:"vegetarian"`
	Vegan               bool            `json:"vegan"`
	GlutenFree          bool            `json:"glutenFree"`
	DairyFree           bool            `json:"dairyFree"`
	ExtendedIngredients []apiIngredient `json:"extendedIngredients"`
	Instructions        string          `json:"instructions"`
	AnalyzedInstructions []struct {
		Name  string `json:"name"`
		Steps []struct {
			Number      int    `json:"number"`
			Step        string `json:"step"`
			Ingredients []struct {
				Name string `json:"name"`
			} `json:"ingredients"`
			Equipment []struct {
				Name string `json:"name"`
			} `json:"equipment"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
}

// SearchRecipesForSlot returns recipes for one slot batch and the points
// actually spent. It only fails with ErrBudgetExhausted: once the budget is
// approved, catalog errors are absorbed by local fallback recipes.
func (s *catalogService) SearchRecipesForSlot(ctx context.Context, user *entities.User, slot string, count int) ([]domain.RecipeSummary, float64, error) {
	cacheKey := fmt.Sprintf("search:%s:%s:%s", user.ID, slot, time.Now().Format("2006-01-02"))

	if data, ok := s.searchCache.Get(ctx, cacheKey); ok {
		var cached []domain.RecipeSummary
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) >= count {
			log.Printf("using %d cached recipes for slot %s", count, slot)
			return cached[:count], 0, nil
		}
	}

	estimatedPoints := searchPointsBase + searchPointsPerResult*float64(count)
	if !s.budget.TryConsume(estimatedPoints) {
		return nil, 0, domain.ErrBudgetExhausted
	}

	params := buildSearchParams(user.Preferences)
	params.Set("apiKey", s.apiKey())
	params.Set("number", strconv.Itoa(count))
	params.Set("addRecipeInformation", "true")
	params.Set("fillIngredients", "true")
	params.Set("instructionsRequired", "true")
	if slot == domain.MealSlotBreakfast {
		params.Set("type", "breakfast")
	} else {
		params.Set("type", "main course")
	}

	var apiRes searchAPIResponse
	if err := s.getJSON(ctx, "/complexSearch", params, &apiRes); err != nil {
		log.Printf("catalog search failed for slot %s, substituting local recipes: %v", slot, err)
		s.budget.Refund(estimatedPoints)
		return fallbackSummaries(slot, count), 0, nil
	}

	recipes := make([]domain.RecipeSummary, 0, len(apiRes.Results))
	for _, r := range apiRes.Results {
		ingredients := make([]domain.Ingredient, 0, len(r.MissedIngredients)+len(r.UsedIngredients))
		for _, ing := range append(r.MissedIngredients, r.UsedIngredients...) {
			ingredients = append(ingredients, normalizeIngredient(ing))
		}
		recipes = append(recipes, domain.RecipeSummary{
			ID:          r.ID,
			Title:       r.Title,
			Image:       r.Image,
			ReadyTime:   r.ReadyInMinutes,
			Servings:    r.Servings,
			SourceURL:   r.SourceURL,
			Vegetarian:  r.Vegetarian,
			Vegan:       r.Vegan,
			GlutenFree:  r.GlutenFree,
			DairyFree:   r.DairyFree,
			Ingredients: ingredients,
		})
	}

	if data, err := json.Marshal(recipes); err == nil {
		s.searchCache.Set(ctx, cacheKey, data)
	}

	return recipes, estimatedPoints, nil
}

// GetRecipeDetail fetches full recipe detail, spending one point on a cache
// miss. Failures substitute a local recipe derived from the id parity and
// cache it so the failing call is not retried.
func (s *catalogService) GetRecipeDetail(ctx context.Context, recipeID int) (domain.RecipeDetail, error) {
	cacheKey := fmt.Sprintf("detail:%d", recipeID)

	if data, ok := s.detailCache.Get(ctx, cacheKey); ok {
		var cached domain.RecipeDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	if !s.budget.TryConsume(detailPointCost) {
		return domain.RecipeDetail{}, domain.ErrBudgetExhausted
	}

	params := url.Values{}
	params.Set("apiKey", s.apiKey())
	params.Set("includeNutrition", "false")

	var apiRes detailAPIResponse
	if err := s.getJSON(ctx, fmt.Sprintf("/%d/information", recipeID), params, &apiRes); err != nil {
		log.Printf("catalog detail failed for recipe %d, substituting local recipe: %v", recipeID, err)
		s.budget.Refund(detailPointCost)
		fallback := FallbackDetail(fallbackSlotForRecipe(recipeID))
		if data, marshalErr := json.Marshal(fallback); marshalErr == nil {
			s.detailCache.Set(ctx, cacheKey, data)
		}
		return fallback, nil
	}

	detail := domain.RecipeDetail{
		RecipeSummary: domain.RecipeSummary{
			ID:          apiRes.ID,
			Title:       apiRes.Title,
			Image:       apiRes.Image,
			ReadyTime:   apiRes.ReadyInMinutes,
			Servings:    apiRes.Servings,
			SourceURL:   apiRes.SourceURL,
			Vegetarian:  apiRes.Vegetarian,
			Vegan:       apiRes.Vegan,
			GlutenFree:  apiRes.GlutenFree,
			DairyFree:   apiRes.DairyFree,
			Ingredients: make([]domain.Ingredient, 0, len(apiRes.ExtendedIngredients)),
		},
		Instructions: apiRes.Instructions,
	}
	for _, ing := range apiRes.ExtendedIngredients {
		detail.Ingredients = append(detail.Ingredients, normalizeIngredient(ing))
	}
	if len(apiRes.AnalyzedInstructions) > 0 {
		for _, step := range apiRes.AnalyzedInstructions[0].Steps {
			converted := domain.InstructionStep{
				Number: step.Number,
				Text:   step.Step,
			}
			for _, ing := range step.Ingredients {
				converted.Ingredients = append(converted.Ingredients, ing.Name)
			}
			for _, eq := range step.Equipment {
				converted.Equipment = append(converted.Equipment, eq.Name)
			}
			detail.Steps = append(detail.Steps, converted)
		}
	}

	if data, err := json.Marshal(detail); err == nil {
		s.detailCache.Set(ctx, cacheKey, data)
	}

	return detail, nil
}

// normalizeIngredient prefers the cleaned ingredient name over the raw one.
func normalizeIngredient(ing apiIngredient) domain.Ingredient {
	name := ing.NameClean
	if name == "" {
		name = ing.Name
	}
	return domain.Ingredient{Name: name, Amount: ing.Amount, Unit: ing.Unit}
}

// buildSearchParams maps each present preference field to one catalog query
// parameter. Absent fields are omitted, not defaulted.
func buildSearchParams(prefs entities.Preferences) url.Values {
	params := url.Values{}

	if len(prefs.Diets) > 0 {
		params.Set("diet", strings.Join(prefs.Diets, ","))
	}

	intolerances := append(append([]string{}, prefs.Allergies...), prefs.Intolerances...)
	if len(intolerances) > 0 {
		params.Set("intolerances", strings.Join(intolerances, ","))
	}

	if len(prefs.PreferredIngredients) > 0 {
		params.Set("includeIngredients", strings.Join(prefs.PreferredIngredients, ","))
	}
	if len(prefs.AvoidedIngredients) > 0 {
		params.Set("excludeIngredients", strings.Join(prefs.AvoidedIngredients, ","))
	}

	if prefs.MaxPrepTimeMinutes > 0 {
		params.Set("maxReadyTime", strconv.Itoa(prefs.MaxPrepTimeMinutes))
	}

	if len(prefs.PreferredPrepMethods) > 0 {
		params.Set("tags", strings.Join(slugify(prefs.PreferredPrepMethods), ","))
	}

	if len(prefs.NutritionGoals.LowIn) > 0 {
		requirements := make([]string, 0, len(prefs.NutritionGoals.LowIn))
		for _, nutrient := range prefs.NutritionGoals.LowIn {
			requirements = append(requirements, "low-"+strings.ToLower(nutrient))
		}
		params.Set("requirements", strings.Join(requirements, ","))
	}

	if len(prefs.AvailableEquipment) > 0 {
		params.Set("equipment", strings.Join(slugify(prefs.AvailableEquipment), ","))
	}

	return params
}

func slugify(values []string) []string {
	slugs := make([]string, 0, len(values))
	for _, v := range values {
		slugs = append(slugs, strings.ReplaceAll(strings.ToLower(v), " ", "-"))
	}
	return slugs
}

// SearchRaw proxies a free-text search without budget accounting, cached by
// the full query string.
func (s *catalogService) SearchRaw(ctx context.Context, req domain.RecipeSearchRequest) (json.RawMessage, error) {
	params := url.Values{}
	if req.Query != "" {
		params.Set("query", req.Query)
	}
	if req.Diet != "" {
		params.Set("diet", req.Diet)
	}
	if req.Intolerances != "" {
		params.Set("intolerances", req.Intolerances)
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.MaxReadyTime > 0 {
		params.Set("maxReadyTime", strconv.Itoa(req.MaxReadyTime))
	}
	number := req.Number
	if number <= 0 {
		number = 10
	}
	params.Set("number", strconv.Itoa(number))

	return s.fetchRaw(ctx, "/complexSearch", params, "proxy:search:"+params.Encode())
}

func (s *catalogService) DetailRaw(ctx context.Context, recipeID int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")
	return s.fetchRaw(ctx, fmt.Sprintf("/%d/information", recipeID), params, fmt.Sprintf("proxy:detail:%d", recipeID))
}

func (s *catalogService) ByIngredientsRaw(ctx context.Context, ingredients string, number int) (json.RawMessage, error) {
	if number <= 0 {
		number = 10
	}
	params := url.Values{}
	params.Set("ingredients", ingredients)
	params.Set("number", strconv.Itoa(number))
	return s.fetchRaw(ctx, "/findByIngredients", params, "proxy:ingredients:"+params.Encode())
}

func (s *catalogService) fetchRaw(ctx context.Context, endpoint string, params url.Values, cacheKey string) (json.RawMessage, error) {
	if data, ok := s.searchCache.Get(ctx, cacheKey); ok {
		return data, nil
	}

	params.Set("apiKey", s.apiKey())
	var raw json.RawMessage
	if err := s.getJSON(ctx, endpoint, params, &raw); err != nil {
		return nil, domain.ErrCatalogUnavailable
	}

	s.searchCache.Set(ctx, cacheKey, raw)
	return raw, nil
}

func (s *catalogService) getJSON(ctx context.Context, endpoint string, params url.Values, dest interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
