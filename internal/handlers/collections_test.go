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

func collectionRouter(m *mockStore, userID int) *gin.Engine {
	h := NewCollectionHandler(m)
	r := gin.New()
	if userID > 0 {
		r.Use(asUser(userID))
	}
	r.POST("/questions/:id/collection", h.ToggleSave)
	r.GET("/collections", h.GetCollection)
	return r
}

func TestToggleSave(t *testing.T) {
	saved := map[int]bool{}
	m := &mockStore{
		ToggleCollectionFunc: func(_ context.Context, _ int, questionID int) (bool, error) {
			saved[questionID] = !saved[questionID]
			return saved[questionID], nil
		},
	}
	r := collectionRouter(m, 1)

	for _, want := range []bool{true, false, true} {
		w := doJSON(t, r, http.MethodPost, "/questions/8/collection", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, decode(t, w)["saved"])
	}
}

func TestToggleSaveErrors(t *testing.T) {
	m := &mockStore{
		ToggleCollectionFunc: func(context.Context, int, int) (bool, error) {
			return false, store.ErrNotFound
		},
	}
	assert.Equal(t, http.StatusNotFound, doJSON(t, collectionRouter(m, 1), http.MethodPost, "/questions/8/collection", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, collectionRouter(m, 0), http.MethodPost, "/questions/8/collection", nil).Code)
}

func TestGetCollection(t *testing.T) {
	m := &mockStore{
		ListCollectionFunc: func(_ context.Context, authorID int) ([]models.Collection, error) {
			return []models.Collection{
				{ID: 1, AuthorID: authorID, QuestionID: 3, Question: models.Question{ID: 3, Title: "Saved one"}},
			}, nil
		},
	}

	w := doJSON(t, collectionRouter(m, 2), http.MethodGet, "/collections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Saved one"`)
}
