package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/store"
	"github.com/emilythestrangee/devflow/backend/internal/tageditor"
)

type QuestionHandler struct {
	questions QuestionStore
}

func NewQuestionHandler(questions QuestionStore) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func pageFromQuery(c *gin.Context) store.Page {
	number, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return store.Page{Number: number, Size: size}
}

// GetQuestions lists questions, optionally filtered by ?tag=
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	list, err := h.questions.ListQuestions(c.Request.Context(), c.Query("tag"), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuestionListResponse(list))
}

// GetQuestion returns a single question with its vote tally. Authenticated
// callers also get their own vote and saved state, and the view is counted.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	question, err := h.questions.GetQuestion(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.questions.ViewQuestion(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	question.Views++

	target := models.QuestionTarget(id)
	counts, err := h.questions.VoteCounts(ctx, target)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"question":  newQuestionResponse(*question),
		"upvotes":   counts.Upvotes,
		"downvotes": counts.Downvotes,
		"user_vote": models.VoteNone,
		"saved":     false,
	}

	if userID, ok := extractUserID(c); ok {
		state, err := h.questions.VoteState(ctx, userID, target)
		if err != nil {
			respondError(c, err)
			return
		}
		saved, err := h.questions.IsSaved(ctx, userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["user_vote"] = state
		resp["saved"] = saved
	}

	c.JSON(http.StatusOK, resp)
}

// CreateQuestion submits a question draft (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.QuestionDraft
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	draft, err := tageditor.FromTags(input.Tags)
	if err == nil {
		err = tageditor.Validate(draft)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "field": "tags"})
		return
	}

	question, err := h.questions.CreateQuestion(c.Request.Context(), authorID, input.Title, input.Content, draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "question": newQuestionResponse(*question)})
}

// DeleteQuestion deletes a question (PROTECTED - requires ownership)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.questions.DeleteQuestion(c.Request.Context(), authorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
