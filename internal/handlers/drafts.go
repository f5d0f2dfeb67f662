package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/tageditor"
)

// DraftHandler applies tag edits to a draft held by the client. The server
// keeps no draft state between calls.
type DraftHandler struct{}

func NewDraftHandler() *DraftHandler {
	return &DraftHandler{}
}

type tagEditRequest struct {
	Tags   []string `json:"tags"`
	Action string   `json:"action" binding:"required,oneof=add remove"`
	Value  string   `json:"value"`
}

type tagEditResponse struct {
	Tags  []string `json:"tags"`
	Error *string  `json:"error"`
}

// EditTags answers {tags, error} for the draft after applying one add or
// remove. A rejected edit still returns 200 with the unchanged tags and the
// message to show under the field.
func (h *DraftHandler) EditTags(c *gin.Context) {
	var input tagEditRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := tageditor.FromTags(input.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft tags: " + err.Error()})
		return
	}

	event := tageditor.Add(input.Value)
	if input.Action == "remove" {
		event = tageditor.Remove(input.Value)
	}

	next, editErr := tageditor.Reduce(draft, event)
	resp := tagEditResponse{Tags: next.Tags()}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if editErr != nil {
		msg := editErr.Error()
		resp.Error = &msg
	}
	c.JSON(http.StatusOK, resp)
}
