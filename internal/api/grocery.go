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

type groceryRoutes struct {
	gs service.GroceryServiceI
}

func NewGroceryRoutes(handler *gin.RouterGroup, gs service.GroceryServiceI, a *auth.DeviceAuth) {
	r := &groceryRoutes{gs: gs}
	h := handler.Group("/grocery")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("", r.GetList)
		h.POST("/items", r.AddItem)
		h.POST("/merge", r.MergeItems)
		h.DELETE("/items/:id", r.RemoveItem)
		h.DELETE("", r.Clear)
	}
}

type GroceryListResponse struct {
	Items []model.GroceryItem `json:"items"`
}

func (r *groceryRoutes) GetList(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items := r.gs.List(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, GroceryListResponse{Items: items})
}

type AddGroceryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

func (r *groceryRoutes) AddItem(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddGroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind grocery item request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	name, ok := validation.Name(req.Name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item name"})
		return
	}

	items := r.gs.AddItem(c.Request.Context(), deviceID, model.GroceryItem{
		Name:     name,
		Amount:   req.Amount,
		Category: req.Category,
	})
	c.JSON(http.StatusOK, GroceryListResponse{Items: items})
}

type MergeGroceryItemsRequest struct {
	Items []model.GroceryItem `json:"items" binding:"required"`
}

type MergeGroceryItemsResponse struct {
	Added int                 `json:"added"`
	Items []model.GroceryItem `json:"items"`
}

func (r *groceryRoutes) MergeItems(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req MergeGroceryItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind grocery merge request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	added, items := r.gs.MergeItems(c.Request.Context(), deviceID, req.Items)
	c.JSON(http.StatusOK, MergeGroceryItemsResponse{Added: added, Items: items})
}

func (r *groceryRoutes) RemoveItem(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items := r.gs.RemoveItem(c.Request.Context(), deviceID, c.Param("id"))
	c.JSON(http.StatusOK, GroceryListResponse{Items: items})
}

func (r *groceryRoutes) Clear(c *gin.Context) {
	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r.gs.Clear(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, GroceryListResponse{Items: []model.GroceryItem{}})
}
