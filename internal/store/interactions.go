package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type interactionInput struct {
	UserID int    `validate:"gt=0"`
	Action string `validate:"required,oneof=view ask answer upvote downvote bookmark delete"`
}

// RecordInteraction appends an interaction of userID on target. Repeated
// interactions are all kept.
func (s *Store) RecordInteraction(ctx context.Context, userID int, action string, target models.Target) error {
	if err := authorize(ctx, userID); err != nil {
		return err
	}
	if err := s.validate.Struct(interactionInput{UserID: userID, Action: action}); err != nil {
		return invalid(err)
	}
	if !target.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidTarget)
	}
	db := s.db.WithContext(ctx)
	if err := targetExists(db, target); err != nil {
		return err
	}
	return insertInteraction(db, userID, action, target)
}

// Interactions lists what userID did, most recent first.
func (s *Store) Interactions(ctx context.Context, userID int, limit int) ([]models.Interaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var out []models.Interaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return out, nil
}

func insertInteraction(db *gorm.DB, userID int, action string, target models.Target) error {
	actionID, actionType := target.Columns()
	row := models.Interaction{
		UserID:     userID,
		Action:     action,
		ActionID:   actionID,
		ActionType: actionType,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// recordBestEffort logs instead of failing: interactions are analytics only.
func (s *Store) recordBestEffort(ctx context.Context, userID int, action string, target models.Target) {
	if err := insertInteraction(s.db.WithContext(ctx), userID, action, target); err != nil {
		s.log.WarnContext(ctx, "record interaction", "user_id", userID, "action", action, "target", target.String(), "error", err)
	}
}
