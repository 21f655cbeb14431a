// This file defines the speech service: thin client-side orchestration of the
// pronunciation-scoring endpoints.
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"letterpal/internal/client/api"
	"letterpal/internal/client/models"
	"letterpal/internal/logging"
)

// SpeechService submits recordings for scoring. The backend keeps a copy of
// scored recordings; saving is best effort and never fails an evaluation.
type SpeechService struct {
	client api.Client
	log    logging.Logger
}

func NewSpeechService(client api.Client, log logging.Logger) *SpeechService {
	return &SpeechService{client: client, log: log}
}

// Evaluate scores one recording against the target letter, then uploads the
// recording with its score for safekeeping.
func (s *SpeechService) Evaluate(ctx context.Context, letter *models.Letter, audio io.Reader, filename string) (*models.SpeechEvaluation, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}

	result, err := s.client.EvaluateSpeech(ctx, letter.Char, bytes.NewReader(data), filename)
	if err != nil {
		return nil, err
	}

	if err := s.client.SaveRecording(ctx, letter.Char, bytes.NewReader(data), filename, result.Score); err != nil {
		s.log.Warn(ctx, "failed to save recording", "letter", letter.Char, "error", err)
	}

	return result, nil
}
