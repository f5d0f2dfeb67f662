package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tags TagStore
}

func NewTagHandler(tags TagStore) *TagHandler {
	return &TagHandler{tags: tags}
}

// GetTags lists tags with their question counts
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tags.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTagQuestions lists the questions carrying a tag
func (h *TagHandler) GetTagQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	tag, err := h.tags.TagByName(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.tags.ListQuestions(ctx, tag.Name, pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newQuestionListResponse(list)
	c.JSON(http.StatusOK, gin.H{
		"tag":       tag,
		"questions": resp.Questions,
		"total":     resp.Total,
		"is_next":   resp.IsNext,
	})
}
