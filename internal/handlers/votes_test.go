package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/store"
)

// toggleVotes mimics the store's toggle rules for a single user.
func toggleVotes() *mockStore {
	current := map[models.Target]models.VoteType{}
	return &mockStore{
		CastVoteFunc: func(_ context.Context, _ int, target models.Target, vt models.VoteType) (models.VoteState, error) {
			if current[target] == vt {
				delete(current, target)
				return models.VoteNone, nil
			}
			current[target] = vt
			return models.VoteState(vt), nil
		},
		VoteCountsFunc: func(_ context.Context, target models.Target) (store.VoteCount, error) {
			var n store.VoteCount
			switch current[target] {
			case models.Upvote:
				n.Upvotes = 1
			case models.Downvote:
				n.Downvotes = 1
			}
			return n, nil
		},
	}
}

func voteRouter(m *mockStore, userID int) *gin.Engine {
	h := NewVoteHandler(m)
	r := gin.New()
	if userID > 0 {
		r.Use(asUser(userID))
	}
	r.POST("/questions/:id/vote", h.VoteQuestion)
	r.POST("/answers/:id/vote", h.VoteAnswer)
	return r
}

func TestVoteToggle(t *testing.T) {
	r := voteRouter(toggleVotes(), 1)

	steps := []struct {
		voteType  string
		state     string
		upvotes   float64
		downvotes float64
	}{
		{"upvote", "upvote", 1, 0},
		{"upvote", "none", 0, 0},
		{"downvote", "downvote", 0, 1},
		{"upvote", "upvote", 1, 0},
	}
	for _, s := range steps {
		w := doJSON(t, r, http.MethodPost, "/questions/4/vote", gin.H{"vote_type": s.voteType})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode(t, w)
		assert.Equal(t, s.state, resp["state"])
		assert.Equal(t, s.upvotes, resp["upvotes"])
		assert.Equal(t, s.downvotes, resp["downvotes"])
	}

	// the answer with the same id is a different target
	w := doJSON(t, r, http.MethodPost, "/answers/4/vote", gin.H{"vote_type": "upvote"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upvote", decode(t, w)["state"])
}

func TestVoteCountsMetric(t *testing.T) {
	before := testutil.ToFloat64(votesTotal.WithLabelValues("answer", "downvote"))

	w := doJSON(t, voteRouter(toggleVotes(), 1), http.MethodPost, "/answers/2/vote", gin.H{"vote_type": "downvote"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(votesTotal.WithLabelValues("answer", "downvote")))
}

func TestVoteErrors(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		w := doJSON(t, voteRouter(toggleVotes(), 0), http.MethodPost, "/questions/4/vote", gin.H{"vote_type": "upvote"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad vote type", func(t *testing.T) {
		w := doJSON(t, voteRouter(toggleVotes(), 1), http.MethodPost, "/questions/4/vote", gin.H{"vote_type": "sideways"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing target", func(t *testing.T) {
		m := &mockStore{
			CastVoteFunc: func(context.Context, int, models.Target, models.VoteType) (models.VoteState, error) {
				return "", store.ErrNotFound
			},
		}
		w := doJSON(t, voteRouter(m, 1), http.MethodPost, "/questions/4/vote", gin.H{"vote_type": "upvote"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("retries exhausted", func(t *testing.T) {
		m := &mockStore{
			CastVoteFunc: func(context.Context, int, models.Target, models.VoteType) (models.VoteState, error) {
				return "", store.ErrConstraintViolation
			},
		}
		w := doJSON(t, voteRouter(m, 1), http.MethodPost, "/questions/4/vote", gin.H{"vote_type": "upvote"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
