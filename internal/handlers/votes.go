package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type VoteHandler struct {
	votes VoteStore
}

func NewVoteHandler(votes VoteStore) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// VoteQuestion handles upvoting/downvoting a question
func (h *VoteHandler) VoteQuestion(c *gin.Context) {
	h.vote(c, models.TargetQuestion)
}

// VoteAnswer handles upvoting/downvoting an answer
func (h *VoteHandler) VoteAnswer(c *gin.Context) {
	h.vote(c, models.TargetAnswer)
}

// vote applies toggle semantics: one vote per user, removed if repeated,
// switched if opposite.
func (h *VoteHandler) vote(c *gin.Context, kind models.TargetType) {
	voterID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input struct {
		VoteType models.VoteType `json:"vote_type" binding:"required,oneof=upvote downvote"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be upvote or downvote"})
		return
	}

	tgt, err := models.ParseTarget(string(kind), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	state, err := h.votes.CastVote(ctx, voterID, tgt, input.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}
	votesTotal.WithLabelValues(string(tgt.Type()), string(state)).Inc()

	counts, err := h.votes.VoteCounts(ctx, tgt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":     state,
		"upvotes":   counts.Upvotes,
		"downvotes": counts.Downvotes,
	})
}
