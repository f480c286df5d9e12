package api

import (
	"errors"
	"net/http"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type profileRoutes struct {
	ps service.ProfileServiceI
}

func NewProfileRoutes(handler *gin.RouterGroup, ps service.ProfileServiceI, a *auth.DeviceAuth) {
	r := &profileRoutes{ps: ps}
	h := handler.Group("/profile")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("", r.GetProfile)
		h.PUT("", r.SaveProfile)
		h.POST("/targets", r.CalculateTargets)
	}
}

type ProfileResponse struct {
	Profile *model.Profile     `json:"profile"`
	Targets model.MacroTargets `json:"targets"`
}

func (r *profileRoutes) GetProfile(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := r.ps.Get(c.Request.Context(), deviceID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		log.Error("failed to get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Profile: profile,
		Targets: r.ps.CalculateTargets(profile),
	})
}

type SaveProfileRequest struct {
	Name     string  `json:"name"`
	HeightCm float64 `json:"height_cm" binding:"required,gt=0"`
	WeightKg float64 `json:"weight_kg" binding:"required,gt=0"`
	Age      int     `json:"age" binding:"required,gt=0"`
	Gender   string  `json:"gender" binding:"required,oneof=male female"`
	Goal     string  `json:"goal" binding:"required,oneof=bulk cut maintain"`
	Activity string  `json:"activity" binding:"required,oneof=sedentary light moderate active"`
}

func (req *SaveProfileRequest) toModel() *model.Profile {
	return &model.Profile{
		Name:     req.Name,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Age:      req.Age,
		Gender:   req.Gender,
		Goal:     req.Goal,
		Activity: req.Activity,
	}
}

func (r *profileRoutes) SaveProfile(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile := req.toModel()
	if err := r.ps.Save(c.Request.Context(), deviceID, profile); err != nil {
		log.Error("failed to save profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Profile: profile,
		Targets: r.ps.CalculateTargets(profile),
	})
}

func (r *profileRoutes) CalculateTargets(c *gin.Context) {
	log := logger.Logger()

	if _, ok := auth.DeviceID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind targets request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, r.ps.CalculateTargets(req.toModel()))
}
