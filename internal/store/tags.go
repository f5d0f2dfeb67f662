package store

import (
	"context"
	"fmt"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// ListTags returns every tag with its question count, most used first.
func (s *Store) ListTags(ctx context.Context) ([]models.TagCount, error) {
	var tags []models.TagCount
	err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Select("tags.id, tags.name, count(tag_questions.question_id) AS questions").
		Joins("LEFT JOIN tag_questions ON tag_questions.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("questions desc, tags.name asc").
		Scan(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []models.TagCount{}
	}
	return tags, nil
}

// TagByName returns the tag with exactly name.
func (s *Store) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).Where("name = ?", name).Take(&tag).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("tag %q", name))
	}
	return &tag, nil
}
