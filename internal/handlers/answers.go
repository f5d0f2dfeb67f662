package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type AnswerHandler struct {
	answers AnswerStore
}

func NewAnswerHandler(answers AnswerStore) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// GetAnswers returns all answers for a question with calculated votes
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	answers, err := h.answers.ListAnswers(ctx, questionID)
	if err != nil {
		respondError(c, err)
		return
	}

	userID, authenticated := extractUserID(c)
	responses := make([]answerWithVotes, 0, len(answers))
	for _, answer := range answers {
		target := models.AnswerTarget(answer.ID)
		counts, err := h.answers.VoteCounts(ctx, target)
		if err != nil {
			respondError(c, err)
			return
		}

		resp := answerWithVotes{
			answerResponse: newAnswerResponse(answer),
			Upvotes:        counts.Upvotes,
			Downvotes:      counts.Downvotes,
		}
		if authenticated {
			state, err := h.answers.VoteState(ctx, userID, target)
			if err != nil {
				respondError(c, err)
				return
			}
			resp.UserVote = state
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, responses)
}

// CreateAnswer answers a question
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answers.CreateAnswer(c.Request.Context(), authorID, questionID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAnswerResponse(*answer))
}

// DeleteAnswer deletes an answer and its votes (owner only)
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	answerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.answers.DeleteAnswer(c.Request.Context(), authorID, answerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}
