package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type InteractionHandler struct {
	interactions InteractionStore
}

func NewInteractionHandler(interactions InteractionStore) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

type interactionResponse struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordInteraction stores a signal the client observed, such as a view
func (h *InteractionHandler) RecordInteraction(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Action     string `json:"action" binding:"required,oneof=view"`
		TargetType string `json:"target_type" binding:"required"`
		TargetID   int    `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := models.ParseTarget(input.TargetType, input.TargetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.interactions.RecordInteraction(c.Request.Context(), userID, input.Action, target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// GetMyInteractions lists the caller's recent interactions
func (h *InteractionHandler) GetMyInteractions(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := h.interactions.Interactions(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interactionResponse, 0, len(rows))
	for _, row := range rows {
		target, err := row.Target()
		if err != nil {
			// unknown target type
			_ = c.Error(err)
			continue
		}
		responses = append(responses, interactionResponse{
			ID:        row.ID,
			Action:    row.Action,
			Target:    target.String(),
			CreatedAt: row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}
