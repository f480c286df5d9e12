package api

import (
	"net/http"

	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"

	"github.com/gin-gonic/gin"
)

type foodRoutes struct {
	fs service.FoodServiceI
}

func NewFoodRoutes(handler *gin.RouterGroup, fs service.FoodServiceI, a *auth.DeviceAuth) {
	r := &foodRoutes{fs: fs}
	h := handler.Group("/foods")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("/search", r.Search)
	}
}

func (r *foodRoutes) Search(c *gin.Context) {
	if _, ok := auth.DeviceID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	results := r.fs.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"results": results})
}
