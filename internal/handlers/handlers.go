package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/middleware"
	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/store"
	"github.com/emilythestrangee/devflow/backend/internal/tageditor"
)

// UserStore is the user persistence used by AuthHandler.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserExists(ctx context.Context, username, email string) (bool, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	FindOrCreateOAuthUser(ctx context.Context, p store.OAuthProfile) (*models.User, error)
}

// VoteReader reads vote tallies and a user's own vote.
type VoteReader interface {
	VoteCounts(ctx context.Context, target models.Target) (store.VoteCount, error)
	VoteState(ctx context.Context, authorID int, target models.Target) (models.VoteState, error)
}

// QuestionStore is the question persistence used by QuestionHandler.
type QuestionStore interface {
	VoteReader
	CreateQuestion(ctx context.Context, authorID int, title, content string, tags tageditor.Draft) (*models.Question, error)
	GetQuestion(ctx context.Context, id int) (*models.Question, error)
	ListQuestions(ctx context.Context, tag string, page store.Page) (*store.QuestionList, error)
	ViewQuestion(ctx context.Context, id int) error
	DeleteQuestion(ctx context.Context, authorID, id int) error
	IsSaved(ctx context.Context, authorID, questionID int) (bool, error)
}

// AnswerStore is the answer persistence used by AnswerHandler.
type AnswerStore interface {
	VoteReader
	CreateAnswer(ctx context.Context, authorID, questionID int, content string) (*models.Answer, error)
	ListAnswers(ctx context.Context, questionID int) ([]models.Answer, error)
	DeleteAnswer(ctx context.Context, authorID, answerID int) error
}

// VoteStore casts votes.
type VoteStore interface {
	CastVote(ctx context.Context, authorID int, target models.Target, voteType models.VoteType) (models.VoteState, error)
	VoteCounts(ctx context.Context, target models.Target) (store.VoteCount, error)
}

// CollectionStore toggles and lists saved questions.
type CollectionStore interface {
	ToggleCollection(ctx context.Context, authorID, questionID int) (bool, error)
	ListCollection(ctx context.Context, authorID int) ([]models.Collection, error)
}

// TagStore lists tags and the questions carrying them.
type TagStore interface {
	ListTags(ctx context.Context) ([]models.TagCount, error)
	TagByName(ctx context.Context, name string) (*models.Tag, error)
	ListQuestions(ctx context.Context, tag string, page store.Page) (*store.QuestionList, error)
}

// InteractionStore records and lists analytics interactions.
type InteractionStore interface {
	RecordInteraction(ctx context.Context, userID int, action string, target models.Target) error
	Interactions(ctx context.Context, userID int, limit int) ([]models.Interaction, error)
}

// Handler combines all handler types
type Handler struct {
	Auth        *AuthHandler
	Question    *QuestionHandler
	Draft       *DraftHandler
	Answer      *AnswerHandler
	Vote        *VoteHandler
	Collection  *CollectionHandler
	Tag         *TagHandler
	Interaction *InteractionHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(st *store.Store, tokens *auth.Tokens, google GoogleVerifier, github GitHubVerifier) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(st, tokens, google, github),
		Question:    NewQuestionHandler(st),
		Draft:       NewDraftHandler(),
		Answer:      NewAnswerHandler(st),
		Vote:        NewVoteHandler(st),
		Collection:  NewCollectionHandler(st),
		Tag:         NewTagHandler(st),
		Interaction: NewInteractionHandler(st),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := raw.(int)
	return id, ok && id > 0
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps store errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to do this"})
	case errors.Is(err, store.ErrAccountNotLinked):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists, sign in with its original method"})
	case errors.Is(err, store.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting request, please retry"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
