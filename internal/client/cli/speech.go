package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"letterpal/internal/client/models"
)

// Say sends a recorded pronunciation for scoring and, when the child earned
// at least one star, records the result in the ledger and saves the recording
// on the server.
// Usage: say <letter> <audio file>
func (a *App) Say(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: say <letter> <audio file>")
		return nil
	}

	letter := models.LetterByChar(args[0])
	if letter == nil {
		printlnFn("Unknown letter:", args[0])
		return nil
	}

	if !a.session.IsLoggedIn() {
		printlnFn("Please log in first; pronunciation scoring needs the server.")
		return nil
	}

	f, err := os.Open(args[1])
	if err != nil {
		printlnFn("Could not open recording:", err)
		return err
	}
	defer f.Close()

	result, err := a.speech.Evaluate(ctx, letter, f, filepath.Base(args[1]))
	if err != nil {
		printlnFn("Scoring failed:", err)
		return err
	}

	printlnFn(fmt.Sprintf("%s  (accuracy %.0f%%) %s", result.Feedback, result.Accuracy*100, stars(result.Score)))
	return nil
}
