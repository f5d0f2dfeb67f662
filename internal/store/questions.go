package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/tageditor"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type questionInput struct {
	Title   string `validate:"required,min=5,max=100"`
	Content string `validate:"required"`
}

// Page selects a slice of a listing. Page numbers start at 1.
type Page struct {
	Number int
	Size   int
}

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

func (p Page) offset() int {
	return (p.Number - 1) * p.Size
}

// QuestionList is a page of questions and the total across all pages.
type QuestionList struct {
	Questions []models.Question `json:"questions"`
	Total     int64             `json:"total"`
	IsNext    bool              `json:"is_next"`
}

// CreateQuestion stores a question by authorID with the tags of the draft.
// Tags are created on first use and linked once per question.
func (s *Store) CreateQuestion(ctx context.Context, authorID int, title, content string, tags tageditor.Draft) (*models.Question, error) {
	if err := authorize(ctx, authorID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(questionInput{Title: title, Content: content}); err != nil {
		return nil, invalid(err)
	}
	if err := tageditor.Validate(tags); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	question := models.Question{Title: title, Content: content, AuthorID: authorID}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		question.ID = 0
		if err := tx.Omit(clause.Associations).Create(&question).Error; err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		for _, name := range tags.Tags() {
			tag, err := findOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			if err := linkTag(tx, tag.ID, question.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordBestEffort(ctx, authorID, models.ActionAsk, models.QuestionTarget(question.ID))
	s.log.InfoContext(ctx, "question created", "question_id", question.ID, "author_id", authorID, "tags", tags.Len())

	return s.GetQuestion(ctx, question.ID)
}

func findOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&tag).Error
	if err != nil {
		return nil, fmt.Errorf("insert tag %q: %w", name, err)
	}
	if tag.ID != 0 {
		return &tag, nil
	}
	if err := tx.Where("name = ?", name).Take(&tag).Error; err != nil {
		return nil, fmt.Errorf("find tag %q: %w", name, err)
	}
	return &tag, nil
}

func linkTag(tx *gorm.DB, tagID, questionID int) error {
	link := models.TagQuestion{TagID: tagID, QuestionID: questionID}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("link tag %d to question %d: %w", tagID, questionID, err)
	}
	return nil
}

// GetQuestion returns a question with its author and tags.
func (s *Store) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).Preload("Author").Preload("Tags").Take(&q, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("question %d", id))
	}
	return &q, nil
}

// ListQuestions returns questions newest first, optionally restricted to
// those carrying tag.
func (s *Store) ListQuestions(ctx context.Context, tag string, page Page) (*QuestionList, error) {
	page = page.normalize()

	query := s.db.WithContext(ctx).Model(&models.Question{})
	if tag != "" {
		query = query.
			Joins("JOIN tag_questions ON tag_questions.question_id = questions.id").
			Joins("JOIN tags ON tags.id = tag_questions.tag_id").
			Where("tags.name = ?", tag)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	var questions []models.Question
	err := query.
		Preload("Author").
		Preload("Tags").
		Order("questions.created_at desc, questions.id desc").
		Offset(page.offset()).
		Limit(page.Size).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}

	return &QuestionList{
		Questions: questions,
		Total:     total,
		IsNext:    int64(page.offset()+len(questions)) < total,
	}, nil
}

// ViewQuestion counts a view of questionID by the caller in ctx, if any.
func (s *Store) ViewQuestion(ctx context.Context, questionID int) error {
	res := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", questionID).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}

	if userID, ok := auth.UserFrom(ctx); ok {
		s.recordBestEffort(ctx, userID, models.ActionView, models.QuestionTarget(questionID))
	}
	return nil
}

// DeleteQuestion removes a question owned by authorID together with its
// answers and every vote, save and tag link that references them.
func (s *Store) DeleteQuestion(ctx context.Context, authorID, questionID int) error {
	if err := authorize(ctx, authorID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q models.Question
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&q, questionID).Error
		if err != nil {
			return notFound(err, fmt.Sprintf("question %d", questionID))
		}
		if q.AuthorID != authorID {
			return ErrUnauthorized
		}

		var answerIDs []int
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", questionID).Pluck("id", &answerIDs).Error; err != nil {
			return fmt.Errorf("list answers: %w", err)
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("action_type = ? AND action_id IN ?", string(models.TargetAnswer), answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return fmt.Errorf("delete answer votes: %w", err)
			}
		}

		steps := []struct {
			what  string
			model any
			where string
			args  []any
		}{
			{"question votes", &models.Vote{}, "action_type = ? AND action_id = ?", []any{string(models.TargetQuestion), questionID}},
			{"answers", &models.Answer{}, "question_id = ?", []any{questionID}},
			{"collections", &models.Collection{}, "question_id = ?", []any{questionID}},
			{"tag links", &models.TagQuestion{}, "question_id = ?", []any{questionID}},
		}
		for _, step := range steps {
			if err := tx.Where(step.where, step.args...).Delete(step.model).Error; err != nil {
				return fmt.Errorf("delete %s: %w", step.what, err)
			}
		}

		if err := tx.Delete(&q).Error; err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordBestEffort(ctx, authorID, models.ActionDelete, models.QuestionTarget(questionID))
	return nil
}
