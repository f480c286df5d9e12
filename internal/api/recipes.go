package api

import (
	"net/http"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"github.com/mgdevhub/gym-meals/pkg/validation"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type recipeRoutes struct {
	rs service.RecipeServiceI
}

func NewRecipeRoutes(handler *gin.RouterGroup, rs service.RecipeServiceI, a *auth.DeviceAuth) {
	r := &recipeRoutes{rs: rs}
	h := handler.Group("/recipes")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("", r.ListRecipes)
		h.POST("", r.CreateRecipe)
	}
}

func (r *recipeRoutes) ListRecipes(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipes := r.rs.List(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type CreateRecipeIngredient struct {
	Name   string `json:"name" binding:"required"`
	Amount string `json:"amount"`
}

type CreateRecipeRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Time        string                   `json:"time"`
	Description string                   `json:"description"`
	Calories    float64                  `json:"calories" binding:"gte=0"`
	Protein     float64                  `json:"protein" binding:"gte=0"`
	Timing      []string                 `json:"timing"`
	Ingredients []CreateRecipeIngredient `json:"ingredients"`
	Steps       []string                 `json:"steps"`
}

func (r *recipeRoutes) CreateRecipe(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind create recipe request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	title, ok := validation.Name(req.Title)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe title"})
		return
	}
	calories, ok := validation.Calories(req.Calories)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories out of range"})
		return
	}
	protein, ok := validation.Macro(req.Protein)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "protein out of range"})
		return
	}

	ingredients := make([]model.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		name, ok := validation.Name(ing.Name)
		if !ok {
			continue
		}
		ingredients = append(ingredients, model.Ingredient{Name: name, Amount: ing.Amount})
	}

	recipe := r.rs.AddCustom(c.Request.Context(), deviceID, model.Recipe{
		Title:       title,
		Time:        req.Time,
		Description: req.Description,
		Calories:    calories,
		Protein:     protein,
		Timing:      req.Timing,
		Ingredients: ingredients,
		Steps:       req.Steps,
	})

	c.JSON(http.StatusCreated, recipe)
}
