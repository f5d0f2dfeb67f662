package handlers

import (
	"time"

	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/store"
)

// Public payloads. Authors are always rendered as models.PublicUser so that
// emails and sign-in details never leave /api/me.

type questionResponse struct {
	ID        int               `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	AuthorID  int               `json:"author_id"`
	Author    models.PublicUser `json:"author"`
	Tags      []models.Tag      `json:"tags"`
	Views     int               `json:"views"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func newQuestionResponse(q models.Question) questionResponse {
	tags := q.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return questionResponse{
		ID:        q.ID,
		Title:     q.Title,
		Content:   q.Content,
		AuthorID:  q.AuthorID,
		Author:    q.Author.Public(),
		Tags:      tags,
		Views:     q.Views,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

type questionListResponse struct {
	Questions []questionResponse `json:"questions"`
	Total     int64              `json:"total"`
	IsNext    bool               `json:"is_next"`
}

func newQuestionListResponse(list *store.QuestionList) questionListResponse {
	questions := make([]questionResponse, 0, len(list.Questions))
	for _, q := range list.Questions {
		questions = append(questions, newQuestionResponse(q))
	}
	return questionListResponse{Questions: questions, Total: list.Total, IsNext: list.IsNext}
}

type answerResponse struct {
	ID         int               `json:"id"`
	Content    string            `json:"content"`
	AuthorID   int               `json:"author_id"`
	Author     models.PublicUser `json:"author"`
	QuestionID int               `json:"question_id"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func newAnswerResponse(a models.Answer) answerResponse {
	return answerResponse{
		ID:         a.ID,
		Content:    a.Content,
		AuthorID:   a.AuthorID,
		Author:     a.Author.Public(),
		QuestionID: a.QuestionID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// answerWithVotes is an answer as listed under its question.
type answerWithVotes struct {
	answerResponse
	Upvotes   int64            `json:"upvotes"`
	Downvotes int64            `json:"downvotes"`
	UserVote  models.VoteState `json:"user_vote,omitempty"`
}

type collectionResponse struct {
	ID        int              `json:"id"`
	Question  questionResponse `json:"question"`
	CreatedAt time.Time        `json:"created_at"`
}
