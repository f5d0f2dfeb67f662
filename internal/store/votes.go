package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// VoteCount is the tally of votes on one target.
type VoteCount struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

var voteKey = []clause.Column{{Name: "author_id"}, {Name: "action_id"}, {Name: "action_type"}}

// CastVote records authorID's vote on target and returns the resulting state.
// Repeating the current vote removes it, the opposite vote replaces it, and
// with no prior vote one is created. At most one vote exists per author and
// target, also under concurrent calls.
func (s *Store) CastVote(ctx context.Context, authorID int, target models.Target, voteType models.VoteType) (models.VoteState, error) {
	if err := authorize(ctx, authorID); err != nil {
		return models.VoteNone, err
	}
	if !target.Valid() {
		return models.VoteNone, fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidTarget)
	}
	if !voteType.Valid() {
		return models.VoteNone, fmt.Errorf("%w: vote type %q", ErrInvalidInput, voteType)
	}

	actionID, actionType := target.Columns()
	state := models.VoteNone

	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := targetExists(tx, target); err != nil {
			return err
		}

		vote := models.Vote{
			AuthorID:   authorID,
			ActionID:   actionID,
			ActionType: actionType,
			VoteType:   voteType,
		}
		res := tx.Clauses(clause.OnConflict{Columns: voteKey, DoNothing: true}).Create(&vote)
		if res.Error != nil {
			return fmt.Errorf("insert vote: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			state = models.VoteState(voteType)
			return nil
		}

		var existing models.Vote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("author_id = ? AND action_id = ? AND action_type = ?", authorID, actionID, actionType).
			Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted between the insert and the lock.
			return errRowChanged
		}
		if err != nil {
			return fmt.Errorf("lock vote: %w", err)
		}

		if existing.VoteType == voteType {
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("delete vote: %w", err)
			}
			state = models.VoteNone
			return nil
		}

		if err := tx.Model(&existing).Update("vote_type", string(voteType)).Error; err != nil {
			return fmt.Errorf("update vote: %w", err)
		}
		state = models.VoteState(voteType)
		return nil
	})
	if err != nil {
		return models.VoteNone, err
	}

	if state != models.VoteNone {
		s.recordBestEffort(ctx, authorID, string(voteType), target)
	}

	s.log.InfoContext(ctx, "vote cast", "author_id", authorID, "target", target.String(), "state", state)
	return state, nil
}

// VoteState returns authorID's current vote on target.
func (s *Store) VoteState(ctx context.Context, authorID int, target models.Target) (models.VoteState, error) {
	actionID, actionType := target.Columns()

	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("author_id = ? AND action_id = ? AND action_type = ?", authorID, actionID, actionType).
		Take(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.VoteNone, nil
	}
	if err != nil {
		return models.VoteNone, fmt.Errorf("find vote: %w", err)
	}
	return models.VoteState(vote.VoteType), nil
}

// VoteCounts tallies the votes on target.
func (s *Store) VoteCounts(ctx context.Context, target models.Target) (VoteCount, error) {
	actionID, actionType := target.Columns()

	var rows []struct {
		VoteType models.VoteType
		N        int64
	}
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Select("vote_type, count(*) AS n").
		Where("action_id = ? AND action_type = ?", actionID, actionType).
		Group("vote_type").
		Scan(&rows).Error
	if err != nil {
		return VoteCount{}, fmt.Errorf("count votes on %s: %w", target, err)
	}

	var count VoteCount
	for _, r := range rows {
		switch r.VoteType {
		case models.Upvote:
			count.Upvotes = r.N
		case models.Downvote:
			count.Downvotes = r.N
		}
	}
	return count, nil
}
