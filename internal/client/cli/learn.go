package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"letterpal/internal/client/models"
	"letterpal/internal/common"
)

// List prints the alphabet catalog with the locally recorded progress.
func (a *App) List(ctx context.Context) error {
	for _, letter := range models.Letters {
		entry := a.ledger.Entry(letter.ID)
		mark := " "
		if entry.Completed {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %s %-12s %s  stage %d/%d  %s",
			mark, letter.Char, letter.Word, letter.Image,
			entry.Stage, common.CompletionThreshold, stars(entry.Score)))
	}
	return nil
}

// Learn shows the flashcard for one letter and records the practice result.
// Usage: learn <letter>
func (a *App) Learn(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: learn <letter>")
		return nil
	}

	letter := models.LetterByChar(args[0])
	if letter == nil {
		printlnFn("Unknown letter:", args[0])
		return nil
	}

	entry := a.ledger.Entry(letter.ID)
	printlnFn(fmt.Sprintf("%s is for %s %s (audio: %s)", letter.Char, letter.Word, letter.Image, letter.Audio))
	printlnFn(fmt.Sprintf("Current stage: %d, score: %d", entry.Stage, entry.Score))

	stage, err := a.readInt(fmt.Sprintf("New stage (0-%d)", common.CompletionThreshold))
	if err != nil {
		return err
	}
	score, err := a.readInt("Stars earned (0-3)")
	if err != nil {
		return err
	}

	updated := a.ledger.RecordProgress(ctx, letter.ID, stage, score)
	if updated.Completed {
		printlnFn(fmt.Sprintf("Great job! %s is mastered. %s", letter.Char, stars(updated.Score)))
	} else {
		printlnFn(fmt.Sprintf("Progress saved: stage %d, %s", updated.Stage, stars(updated.Score)))
	}
	return nil
}

func (a *App) readInt(prompt string) (int, error) {
	text, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		printlnFn("Please enter a small positive number")
		return 0, fmt.Errorf("invalid number: %q", text)
	}
	return n, nil
}

func stars(n int) string {
	if n <= 0 {
		return "no stars yet"
	}
	s := ""
	for i := 0; i < n; i++ {
		s += "★"
	}
	return s
}
