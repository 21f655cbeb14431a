package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"letterpal/internal/server/models"
	"letterpal/internal/server/services"
)

const timeLayout = time.RFC3339

type progressResponse struct {
	LetterID  int  `json:"letter_id"`
	Stage     int  `json:"stage"`
	Score     int  `json:"score"`
	Completed bool `json:"completed"`
}

type updateProgressRequest struct {
	LetterID int `json:"letter_id"`
	Stage    int `json:"stage"`
	Score    int `json:"score"`
}

type checkinResponse struct {
	Date           string `json:"date"`
	LettersLearned int    `json:"letters_learned"`
}

func toProgressResponse(p *models.Progress) progressResponse {
	return progressResponse{
		LetterID:  p.LetterID,
		Stage:     p.Stage,
		Score:     p.Score,
		Completed: p.Completed,
	}
}

func (s *Server) handleAllProgress(c *gin.Context) {
	list, err := s.progress.All(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.serverError(c, err)
		return
	}

	out := make([]progressResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProgressResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdateProgress(c *gin.Context) {
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	p, err := s.progress.Update(c.Request.Context(), currentUserID(c), req.LetterID, req.Stage, req.Score)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLetterID) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid letter id"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProgressResponse(p))
}

func (s *Server) handleCheckin(c *gin.Context) {
	record, err := s.progress.Checkin(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkinResponse{
		Date:           record.Date,
		LettersLearned: record.LettersLearned,
	})
}

func (s *Server) handleCheckins(c *gin.Context) {
	records, err := s.progress.Checkins(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.serverError(c, err)
		return
	}

	out := make([]checkinResponse, 0, len(records))
	for _, r := range records {
		out = append(out, checkinResponse{Date: r.Date, LettersLearned: r.LettersLearned})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.progress.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// serverError logs the failure and answers with a bare 500; details stay in
// the log.
func (s *Server) serverError(c *gin.Context, err error) {
	s.log.Error(c.Request.Context(), "handler error",
		"path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
}
