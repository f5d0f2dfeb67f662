package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/store"
)

func interactionRouter(m *mockStore, userID int) *gin.Engine {
	h := NewInteractionHandler(m)
	r := gin.New()
	if userID > 0 {
		r.Use(asUser(userID))
	}
	r.POST("/interactions", h.RecordInteraction)
	r.GET("/me/interactions", h.GetMyInteractions)
	return r
}

func TestRecordInteraction(t *testing.T) {
	var got models.Target
	m := &mockStore{
		RecordInteractionFunc: func(_ context.Context, userID int, action string, target models.Target) error {
			assert.Equal(t, 3, userID)
			assert.Equal(t, models.ActionView, action)
			got = target
			return nil
		},
	}
	r := interactionRouter(m, 3)

	w := doJSON(t, r, http.MethodPost, "/interactions", gin.H{"action": "view", "target_type": "answer", "target_id": 9})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.AnswerTarget(9), got)

	tests := []struct {
		name string
		body gin.H
	}{
		{"unknown target type", gin.H{"action": "view", "target_type": "comment", "target_id": 9}},
		{"negative id", gin.H{"action": "view", "target_type": "question", "target_id": -1}},
		{"server-side action", gin.H{"action": "upvote", "target_type": "question", "target_id": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/interactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Equal(t, http.StatusUnauthorized,
		doJSON(t, interactionRouter(m, 0), http.MethodPost, "/interactions", gin.H{"action": "view", "target_type": "question", "target_id": 1}).Code)
}

func TestRecordInteractionMissingTarget(t *testing.T) {
	m := &mockStore{
		RecordInteractionFunc: func(context.Context, int, string, models.Target) error {
			return store.ErrNotFound
		},
	}
	w := doJSON(t, interactionRouter(m, 3), http.MethodPost, "/interactions", gin.H{"action": "view", "target_type": "question", "target_id": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyInteractions(t *testing.T) {
	m := &mockStore{
		InteractionsFunc: func(_ context.Context, userID, limit int) ([]models.Interaction, error) {
			assert.Equal(t, 10, limit)
			return []models.Interaction{
				{ID: 2, UserID: userID, Action: models.ActionUpvote, ActionID: 5, ActionType: "answer"},
				{ID: 1, UserID: userID, Action: models.ActionAsk, ActionID: 4, ActionType: "question"},
			}, nil
		},
	}

	w := doJSON(t, interactionRouter(m, 3), http.MethodGet, "/me/interactions?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"target":"answer:5"`)
	assert.Contains(t, w.Body.String(), `"target":"question:4"`)
}
