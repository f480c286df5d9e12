package api

import (
	"errors"
	"net/http"

	"github.com/mgdevhub/gym-meals/internal/middleware"
	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type analysisRoutes struct {
	as service.AnalysisServiceI
}

func NewAnalysisRoutes(handler *gin.RouterGroup, as service.AnalysisServiceI, limiter *middleware.RateLimiter, a *auth.DeviceAuth) {
	r := &analysisRoutes{as: as}
	h := handler.Group("/analysis")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.POST("/photo", limiter.Middleware(), r.AnalyzePhoto)
	}
}

type AnalyzePhotoRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
}

func (r *analysisRoutes) AnalyzePhoto(c *gin.Context) {
	log := logger.Logger()

	if _, ok := auth.DeviceID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AnalyzePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind analysis request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	analysis, err := r.as.AnalyzePhoto(c.Request.Context(), req.Image, req.MimeType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "image payload is empty"})
		case errors.Is(err, service.ErrNotFood):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Target invalid. Only nutrition sources are authorized.",
			})
		default:
			log.Error("photo analysis failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		}
		return
	}

	c.JSON(http.StatusOK, analysis)
}
