package handlers

import (
	"log"
	"net/http"

	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store session.Store
}

func NewHealthHandler(store session.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "Connexion au stockage impossible",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
