// Package store persists questions, answers, tags and the vote, collection and
// interaction records that reference them. Uniqueness of votes, saves and tag
// links is enforced by unique indexes and upserts, so the invariants hold for
// concurrent requests by the same author.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/database"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// maxAttempts bounds how often a toggle transaction is retried when a
// concurrent writer changed the same row.
const maxAttempts = 3

type Store struct {
	db       *gorm.DB
	log      *slog.Logger
	validate *validator.Validate
}

func New(db *gorm.DB, log *slog.Logger) *Store {
	return &Store{
		db:       db,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// authorize checks that the authenticated caller carried by ctx acts as authorID.
func authorize(ctx context.Context, authorID int) error {
	caller, ok := auth.UserFrom(ctx)
	if !ok || caller != authorID {
		return ErrUnauthorized
	}
	return nil
}

// transact runs fn in a transaction, retrying when fn reports a concurrent
// change or the database reports a unique violation.
func (s *Store) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errRowChanged) && !database.IsUniqueViolation(err) {
			return err
		}
		s.log.DebugContext(ctx, "retrying transaction", "attempt", attempt, "error", err)
	}
	return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
}

// targetExists returns ErrNotFound unless the question or answer exists.
func targetExists(tx *gorm.DB, target models.Target) error {
	var model any = &models.Question{}
	if target.IsAnswer() {
		model = &models.Answer{}
	}

	var n int64
	if err := tx.Model(model).Where("id = ?", target.ID()).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s: %w", target, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", target, ErrNotFound)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("find %s: %w", what, err)
}
