package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

type answerInput struct {
	Content string `validate:"required,min=1"`
}

// CreateAnswer adds an answer by authorID to questionID.
func (s *Store) CreateAnswer(ctx context.Context, authorID, questionID int, content string) (*models.Answer, error) {
	if err := authorize(ctx, authorID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(answerInput{Content: content}); err != nil {
		return nil, invalid(err)
	}

	answer := models.Answer{Content: content, AuthorID: authorID, QuestionID: questionID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := targetExists(tx, models.QuestionTarget(questionID)); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&answer).Error; err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordBestEffort(ctx, authorID, models.ActionAnswer, models.AnswerTarget(answer.ID))

	if err := s.db.WithContext(ctx).Preload("Author").Take(&answer, answer.ID).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("answer %d", answer.ID))
	}
	return &answer, nil
}

// ListAnswers returns the answers to questionID, oldest first.
func (s *Store) ListAnswers(ctx context.Context, questionID int) ([]models.Answer, error) {
	if err := targetExists(s.db.WithContext(ctx), models.QuestionTarget(questionID)); err != nil {
		return nil, err
	}

	var answers []models.Answer
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("question_id = ?", questionID).
		Order("created_at asc, id asc").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	if answers == nil {
		answers = []models.Answer{}
	}
	return answers, nil
}

// DeleteAnswer removes an answer owned by authorID and the votes on it.
func (s *Store) DeleteAnswer(ctx context.Context, authorID, answerID int) error {
	if err := authorize(ctx, authorID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Answer
		if err := tx.Take(&a, answerID).Error; err != nil {
			return notFound(err, fmt.Sprintf("answer %d", answerID))
		}
		if a.AuthorID != authorID {
			return ErrUnauthorized
		}

		err := tx.Where("action_type = ? AND action_id = ?", string(models.TargetAnswer), answerID).
			Delete(&models.Vote{}).Error
		if err != nil {
			return fmt.Errorf("delete answer votes: %w", err)
		}
		if err := tx.Delete(&a).Error; err != nil {
			return fmt.Errorf("delete answer: %w", err)
		}
		return nil
	})
}
