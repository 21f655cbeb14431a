// This file defines the progress ledger: per-letter learning state, the
// check-in calendar, and the streak/star aggregates derived from them.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"letterpal/internal/client/api"
	"letterpal/internal/client/models"
	"letterpal/internal/client/repositories/kv"
	"letterpal/internal/common"
	"letterpal/internal/logging"
)

// LedgerService maintains per-letter progress and check-in history. Every
// mutation updates memory first and then writes the full snapshot through to
// the durable store; a storage or remote-sync failure is a logged warning and
// never rolls the in-memory update back.
type LedgerService struct {
	client  api.Client
	store   kv.Repository
	session *SessionService
	log     logging.Logger

	progress models.ProgressMap
	checkins []string

	now func() time.Time
}

func NewLedgerService(client api.Client, store kv.Repository, session *SessionService, log logging.Logger) *LedgerService {
	return &LedgerService{
		client:   client,
		store:    store,
		session:  session,
		log:      log,
		progress: models.ProgressMap{},
		now:      time.Now,
	}
}

// Load reads the persisted progress mapping and check-in log into memory.
// A snapshot that fails to parse is dropped and replaced with an empty one;
// startup continues either way.
func (l *LedgerService) Load(ctx context.Context) error {
	raw, ok, err := l.store.Get(ctx, kv.KeyProgress)
	if err != nil {
		return fmt.Errorf("failed to read stored progress: %w", err)
	}
	if ok {
		var m models.ProgressMap
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			l.log.Warn(ctx, "stored progress snapshot is corrupt, resetting",
				"error", fmt.Errorf("%w: %v", common.ErrCorruptState, err))
		} else {
			l.progress = m
		}
	}

	raw, ok, err = l.store.Get(ctx, kv.KeyCheckins)
	if err != nil {
		return fmt.Errorf("failed to read stored checkins: %w", err)
	}
	if ok {
		var days []string
		if err := json.Unmarshal([]byte(raw), &days); err != nil {
			l.log.Warn(ctx, "stored checkin log is corrupt, resetting",
				"error", fmt.Errorf("%w: %v", common.ErrCorruptState, err))
		} else {
			l.checkins = days
		}
	}

	return nil
}

// Entry returns the stored entry for letterID, or a zero-value entry when the
// letter has not been touched yet. Never fails.
func (l *LedgerService) Entry(letterID int) models.ProgressEntry {
	if e, ok := l.progress[letterID]; ok {
		return e
	}
	return models.ProgressEntry{}
}

// RecordProgress overwrites the entry for letterID with the given stage and
// score (last write wins), derives Completed from the threshold rule, stamps
// the write time, and persists the full mapping. When a session is active the
// update is also pushed to the backend, best effort.
func (l *LedgerService) RecordProgress(ctx context.Context, letterID, stage, score int) models.ProgressEntry {
	entry := models.ProgressEntry{
		Stage:     stage,
		Score:     score,
		Completed: stage >= common.CompletionThreshold,
		UpdatedAt: l.now(),
	}
	l.progress[letterID] = entry

	l.persistProgress(ctx)

	if l.session.IsLoggedIn() {
		if err := l.client.UpdateProgress(ctx, letterID, stage, score); err != nil {
			l.log.Warn(ctx, "failed to sync progress to server",
				"letter_id", letterID, "error", err)
		}
	}

	return entry
}

// Checkin records today's calendar day in the log. A repeated call on the
// same day is a no-op. When a session is active the check-in is also sent to
// the backend, best effort.
func (l *LedgerService) Checkin(ctx context.Context) {
	today := l.now().Format(common.DayFormat)

	if !l.hasCheckin(today) {
		l.checkins = append(l.checkins, today)
		l.persistCheckins(ctx)
	}

	if l.session.IsLoggedIn() {
		if err := l.client.Checkin(ctx); err != nil {
			l.log.Warn(ctx, "failed to sync checkin to server", "error", err)
		}
	}
}

// StreakDays derives the number of consecutive checked-in days counted
// backward from today. A missing check-in for today yields 0 regardless of
// any run ending yesterday; that is the product rule, not a bug.
func (l *LedgerService) StreakDays() int {
	if len(l.checkins) == 0 {
		return 0
	}

	sorted := make([]string, len(l.checkins))
	copy(sorted, l.checkins)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	today := l.now()
	streak := 0
	for _, day := range sorted {
		expected := today.AddDate(0, 0, -streak).Format(common.DayFormat)
		if day != expected {
			break
		}
		streak++
	}
	return streak
}

// TotalStars derives the sum of scores across all entries; an empty ledger
// yields 0.
func (l *LedgerService) TotalStars() int {
	total := 0
	for _, e := range l.progress {
		total += e.Score
	}
	return total
}

// RemoteStats fetches the server-side aggregate view.
func (l *LedgerService) RemoteStats(ctx context.Context) (*models.Stats, error) {
	return l.client.Stats(ctx)
}

// Checkins returns a copy of the recorded calendar days.
func (l *LedgerService) Checkins() []string {
	out := make([]string, len(l.checkins))
	copy(out, l.checkins)
	return out
}

// CompletedCount returns how many letters have reached the completion
// threshold.
func (l *LedgerService) CompletedCount() int {
	n := 0
	for _, e := range l.progress {
		if e.Completed {
			n++
		}
	}
	return n
}

func (l *LedgerService) hasCheckin(day string) bool {
	for _, d := range l.checkins {
		if d == day {
			return true
		}
	}
	return false
}

func (l *LedgerService) persistProgress(ctx context.Context) {
	raw, err := json.Marshal(l.progress)
	if err != nil {
		l.log.Warn(ctx, "failed to serialize progress", "error", err)
		return
	}
	if err := l.store.Set(ctx, kv.KeyProgress, string(raw)); err != nil {
		l.log.Warn(ctx, "failed to persist progress", "error", err)
	}
}

func (l *LedgerService) persistCheckins(ctx context.Context) {
	raw, err := json.Marshal(l.checkins)
	if err != nil {
		l.log.Warn(ctx, "failed to serialize checkins", "error", err)
		return
	}
	if err := l.store.Set(ctx, kv.KeyCheckins, string(raw)); err != nil {
		l.log.Warn(ctx, "failed to persist checkins", "error", err)
	}
}
