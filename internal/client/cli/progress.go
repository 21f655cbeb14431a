package cli

import (
	"context"
	"fmt"
)

// Checkin records today's check-in; repeated calls on the same day are safe.
func (a *App) Checkin(ctx context.Context) error {
	a.ledger.Checkin(ctx)
	printlnFn(fmt.Sprintf("Checked in! Current streak: %d day(s)", a.ledger.StreakDays()))
	return nil
}

// Stats prints the local aggregates and, when a session is active, the
// server-side view as well.
func (a *App) Stats(ctx context.Context) error {
	printlnFn(fmt.Sprintf("Streak: %d day(s)", a.ledger.StreakDays()))
	printlnFn(fmt.Sprintf("Total stars: %d", a.ledger.TotalStars()))
	printlnFn(fmt.Sprintf("Letters mastered: %d/26", a.ledger.CompletedCount()))

	if !a.session.IsLoggedIn() {
		return nil
	}

	stats, err := a.ledger.RemoteStats(ctx)
	if err != nil {
		printlnFn("Could not fetch server stats:", err)
		return nil
	}
	printlnFn(fmt.Sprintf("Server: %d star(s), %d mastered, %d day streak",
		stats.TotalStars, stats.CompletedLetters, stats.StreakDays))
	return nil
}
