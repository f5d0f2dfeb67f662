package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	collections CollectionStore
}

func NewCollectionHandler(collections CollectionStore) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

// ToggleSave saves a question, or unsaves it when already saved
func (h *CollectionHandler) ToggleSave(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	saved, err := h.collections.ToggleCollection(c.Request.Context(), authorID, questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	collectionTogglesTotal.WithLabelValues(strconv.FormatBool(saved)).Inc()

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// GetCollection returns the caller's saved questions
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entries, err := h.collections.ListCollection(c.Request.Context(), authorID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]collectionResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, collectionResponse{
			ID:        e.ID,
			Question:  newQuestionResponse(e.Question),
			CreatedAt: e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}
