package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"letterpal/internal/common"
)

type registerRequest struct {
	Nickname string `json:"nickname" binding:"required,min=1,max=50"`
	Password string `json:"password" binding:"required,min=1,max=100"`
}

type userResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "nickname and password are required"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrNicknameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "nickname already taken"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt.Format(timeLayout),
	})
}

// handleLogin accepts the credentials form-encoded, mirroring the OAuth2
// password flow the web client uses.
func (s *Server) handleLogin(c *gin.Context) {
	nickname := c.PostForm("username")
	password := c.PostForm("password")
	if nickname == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), nickname, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid nickname or password"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			abortUnauthorized(c)
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt.Format(timeLayout),
	})
}
