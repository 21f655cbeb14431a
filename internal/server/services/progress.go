// This file implements ProgressService: per-letter progress, daily check-ins
// and learning statistics.
package services

import (
	"context"
	"errors"
	"time"

	"letterpal/internal/common"
	"letterpal/internal/server/models"
	"letterpal/internal/server/repositories/checkins"
	"letterpal/internal/server/repositories/progress"
)

// ErrInvalidLetterID rejects letter IDs outside 1..26.
var ErrInvalidLetterID = errors.New("invalid letter id")

// checkinHistoryLimit caps the rows returned by the check-in listing.
const checkinHistoryLimit = 30

type ProgressService struct {
	progressRepo progress.Repository
	checkinRepo  checkins.Repository

	now func() time.Time
}

func NewProgressService(progressRepo progress.Repository, checkinRepo checkins.Repository) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		checkinRepo:  checkinRepo,
		now:          time.Now,
	}
}

// All returns the user's progress for every letter of the alphabet,
// zero-filled for letters without a stored row.
func (s *ProgressService) All(ctx context.Context, userID string) ([]*models.Progress, error) {
	stored, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byLetter := make(map[int]*models.Progress, len(stored))
	for _, p := range stored {
		byLetter[p.LetterID] = p
	}

	result := make([]*models.Progress, 0, common.LetterCount)
	for id := 1; id <= common.LetterCount; id++ {
		if p, ok := byLetter[id]; ok {
			result = append(result, p)
		} else {
			result = append(result, &models.Progress{UserID: userID, LetterID: id})
		}
	}
	return result, nil
}

// Update merges the reported stage and score into the stored row: both only
// ever grow. Completed is derived from the resulting stage.
func (s *ProgressService) Update(ctx context.Context, userID string, letterID, stage, score int) (*models.Progress, error) {
	if letterID < 1 || letterID > common.LetterCount {
		return nil, ErrInvalidLetterID
	}

	current, err := s.progressRepo.Get(ctx, userID, letterID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		current = &models.Progress{UserID: userID, LetterID: letterID}
	}

	if stage > current.Stage {
		current.Stage = stage
	}
	if score > current.Score {
		current.Score = score
	}
	current.Completed = current.Stage >= common.CompletionThreshold
	current.UpdatedAt = s.now()

	if err := s.progressRepo.Upsert(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Checkin records today's check-in for the user. A repeated check-in on the
// same day bumps its letters_learned counter instead of adding a second row.
func (s *ProgressService) Checkin(ctx context.Context, userID string) (*models.Checkin, error) {
	today := s.now().Format(common.DayFormat)
	return s.checkinRepo.Record(ctx, userID, today)
}

// Checkins returns the user's most recent check-ins, newest first.
func (s *ProgressService) Checkins(ctx context.Context, userID string) ([]*models.Checkin, error) {
	return s.checkinRepo.ListByUser(ctx, userID, checkinHistoryLimit)
}

// Stats aggregates stars, completed letters, and the current check-in streak
// counted backward from today.
func (s *ProgressService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	stars, completed, err := s.progressRepo.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.checkinRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	today := s.now()
	streak := 0
	for i, c := range history {
		expected := today.AddDate(0, 0, -i).Format(common.DayFormat)
		if c.Date != expected {
			break
		}
		streak++
	}

	return &models.Stats{
		TotalStars:       stars,
		CompletedLetters: completed,
		StreakDays:       streak,
	}, nil
}

// SetNow replaces the clock; used by tests.
func (s *ProgressService) SetNow(now func() time.Time) {
	s.now = now
}
