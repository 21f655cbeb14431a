package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxRecordingSize caps uploaded audio at 5 MiB.
const maxRecordingSize = 5 << 20

func (s *Server) handleSaveRecording(c *gin.Context) {
	letter := c.PostForm("letter")
	if letter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "letter is required"})
		return
	}
	score, _ := strconv.Atoi(c.PostForm("score"))

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "audio file is required"})
		return
	}
	if fh.Size > maxRecordingSize {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "audio file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.serverError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxRecordingSize))
	if err != nil {
		s.serverError(c, err)
		return
	}

	rec, err := s.recordings.Save(c.Request.Context(), currentUserID(c), letter, fh.Filename, data, score)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "letter": rec.Letter, "score": rec.Score})
}
