package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type challengeRoutes struct {
	cs  service.ChallengeServiceI
	hub *service.RealtimeHub
}

func NewChallengeRoutes(handler *gin.RouterGroup, cs service.ChallengeServiceI, hub *service.RealtimeHub, a *auth.DeviceAuth) {
	r := &challengeRoutes{cs: cs, hub: hub}
	h := handler.Group("/challenge")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("", r.GetStatus)
		h.POST("/days/:day", r.ToggleDay)
		h.POST("/briefing/ack", r.AcknowledgeBriefing)
		h.DELETE("", r.Reset)
	}
}

type ChallengeStatusResponse struct {
	StartDate       *int64       `json:"start_date,omitempty"`
	CurrentDay      int          `json:"current_day"`
	TotalDays       int          `json:"total_days"`
	Completion      map[int]bool `json:"completion"`
	CompletedCount  int          `json:"completed_count"`
	Finished        bool         `json:"finished"`
	BriefingDue     bool         `json:"briefing_due"`
	BriefingMessage string       `json:"briefing_message,omitempty"`
}

func toChallengeStatusResponse(s *model.ChallengeStatus) ChallengeStatusResponse {
	return ChallengeStatusResponse{
		StartDate:       s.StartDate,
		CurrentDay:      s.CurrentDay,
		TotalDays:       model.ChallengeLength,
		Completion:      s.Completion,
		CompletedCount:  s.CompletedCount,
		Finished:        s.Finished,
		BriefingDue:     s.BriefingDue,
		BriefingMessage: s.BriefingMessage,
	}
}

func (r *challengeRoutes) GetStatus(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status := r.cs.Status(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, toChallengeStatusResponse(status))
}

func (r *challengeRoutes) ToggleDay(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		log.Info("failed to parse challenge day", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	status, err := r.cs.ToggleDay(c.Request.Context(), deviceID, day)
	if err != nil {
		if errors.Is(err, service.ErrDayNotAvailable) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "This day hasn't arrived yet. Progress one day at a time.",
			})
			return
		}
		log.Error("failed to toggle challenge day", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle day"})
		return
	}

	response := toChallengeStatusResponse(status)
	r.hub.Broadcast(deviceID, "challenge", response)
	c.JSON(http.StatusOK, response)
}

func (r *challengeRoutes) AcknowledgeBriefing(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r.cs.AcknowledgeBriefing(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, gin.H{})
}

func (r *challengeRoutes) Reset(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r.cs.Reset(c.Request.Context(), deviceID)

	status := r.cs.Status(c.Request.Context(), deviceID)
	response := toChallengeStatusResponse(status)
	r.hub.Broadcast(deviceID, "challenge", response)
	c.JSON(http.StatusOK, response)
}
