package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hollis/pennyflow/internal/auth"
	"github.com/hollis/pennyflow/internal/common"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// handleRegister creates a user, provisions their default categories, and
// returns a fresh token so the client can start immediately.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) || errors.Is(err, common.ErrConstraintViolation) {
			s.respondError(c, common.NewUserError("an account with this email already exists",
				fmt.Errorf("%w: email taken", common.ErrDuplicateEntry)))
			return
		}
		s.respondError(c, err)
		return
	}

	if _, err := s.engine.EnsureDefaultCategories(c.Request.Context(), user.ID); err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, tokenResponse{Token: token, UserID: user.ID})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same response as a wrong password so the endpoint does not
			// reveal which addresses are registered.
			s.respondError(c, common.ErrInvalidCredentials)
			return
		}
		s.respondError(c, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, UserID: user.ID})
}

func (s *Server) handleGetMe(c *gin.Context) {
	user, err := s.store.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
