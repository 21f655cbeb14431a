// This file implements RecordingService: storing uploaded pronunciation
// recordings on disk with a database row per file.
package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"letterpal/internal/filex"
	"letterpal/internal/server/models"
	"letterpal/internal/server/repositories/recordings"
)

type RecordingService struct {
	repo recordings.Repository
	dir  string
}

func NewRecordingService(repo recordings.Repository, dir string) *RecordingService {
	return &RecordingService{repo: repo, dir: dir}
}

// Save writes the audio bytes under a fresh file name and records the upload.
// The original file name only contributes its extension.
func (s *RecordingService) Save(ctx context.Context, userID, letter, filename string, data []byte, score int) (*models.Recording, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".webm"
	}

	name := uuid.NewString() + ext
	path, err := filex.WriteFile(s.dir, name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store recording: %w", err)
	}

	rec := &models.Recording{
		UserID: userID,
		Letter: letter,
		Path:   path,
		Score:  score,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
