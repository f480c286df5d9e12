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

type dailyLogRoutes struct {
	ls  service.DailyLogServiceI
	hub *service.RealtimeHub
}

func NewDailyLogRoutes(handler *gin.RouterGroup, ls service.DailyLogServiceI, hub *service.RealtimeHub, a *auth.DeviceAuth) {
	r := &dailyLogRoutes{ls: ls, hub: hub}
	h := handler.Group("/log")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("", r.GetDailyLog)
		h.POST("/food", r.AddFood)
		h.POST("/workout", r.AddWorkout)
	}
}

type FoodEntryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type DailyLogResponse struct {
	Date            string              `json:"date"`
	Eaten           []FoodEntryResponse `json:"eaten"`
	WorkoutDuration int                 `json:"workout_duration"`
	TotalCalories   int                 `json:"total_calories"`
}

func toDailyLogResponse(l *model.DailyLog) DailyLogResponse {
	eaten := make([]FoodEntryResponse, len(l.Eaten))
	for i, e := range l.Eaten {
		eaten[i] = FoodEntryResponse{
			ID:       e.ID,
			Name:     e.Name,
			Calories: e.Calories,
			Protein:  e.Protein,
			Carbs:    e.Carbs,
			Fat:      e.Fat,
		}
	}
	return DailyLogResponse{
		Date:            l.Date,
		Eaten:           eaten,
		WorkoutDuration: l.WorkoutDuration,
		TotalCalories:   l.TotalCalories(),
	}
}

func (r *dailyLogRoutes) GetDailyLog(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dayLog := r.ls.Load(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, toDailyLogResponse(dayLog))
}

type AddFoodRequest struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
}

func (r *dailyLogRoutes) AddFood(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind add food request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// the log store assumes inputs were validated here
	name, ok := validation.Name(req.Name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food name"})
		return
	}
	calories, ok := validation.Calories(req.Calories)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calories out of range"})
		return
	}
	protein, okP := validation.Macro(req.Protein)
	carbs, okC := validation.Macro(req.Carbs)
	fat, okF := validation.Macro(req.Fat)
	if !okP || !okC || !okF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "macros out of range"})
		return
	}

	dayLog := r.ls.AddFood(c.Request.Context(), deviceID, model.FoodEntry{
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	})

	response := toDailyLogResponse(dayLog)
	r.hub.Broadcast(deviceID, "daily_log", response)
	c.JSON(http.StatusOK, response)
}

type AddWorkoutRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

func (r *dailyLogRoutes) AddWorkout(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind add workout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !validation.WorkoutMinutes(req.Minutes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minutes out of range"})
		return
	}

	dayLog := r.ls.AddWorkout(c.Request.Context(), deviceID, req.Minutes)

	response := toDailyLogResponse(dayLog)
	r.hub.Broadcast(deviceID, "daily_log", response)
	c.JSON(http.StatusOK, response)
}
