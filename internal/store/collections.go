package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// ToggleCollection saves questionID for authorID, or removes the save if it
// already exists. It reports whether the question is saved afterwards. Calling
// it twice returns to the original state.
func (s *Store) ToggleCollection(ctx context.Context, authorID, questionID int) (bool, error) {
	if err := authorize(ctx, authorID); err != nil {
		return false, err
	}

	var saved bool
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := targetExists(tx, models.QuestionTarget(questionID)); err != nil {
			return err
		}

		res := tx.Where("author_id = ? AND question_id = ?", authorID, questionID).Delete(&models.Collection{})
		if res.Error != nil {
			return fmt.Errorf("delete collection: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}

		entry := models.Collection{AuthorID: authorID, QuestionID: questionID}
		res = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "author_id"}, {Name: "question_id"}},
			DoNothing: true,
		}).Create(&entry)
		if res.Error != nil {
			return fmt.Errorf("insert collection: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Saved by a concurrent request after our delete.
			return errRowChanged
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if saved {
		s.recordBestEffort(ctx, authorID, models.ActionBookmark, models.QuestionTarget(questionID))
	}
	return saved, nil
}

// IsSaved reports whether authorID saved questionID.
func (s *Store) IsSaved(ctx context.Context, authorID, questionID int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Collection{}).
		Where("author_id = ? AND question_id = ?", authorID, questionID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check collection: %w", err)
	}
	return n > 0, nil
}

// ListCollection returns the questions authorID saved, newest save first.
func (s *Store) ListCollection(ctx context.Context, authorID int) ([]models.Collection, error) {
	if err := authorize(ctx, authorID); err != nil {
		return nil, err
	}

	var entries []models.Collection
	err := s.db.WithContext(ctx).
		Preload("Question.Author").
		Preload("Question.Tags").
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}
	return entries, nil
}
