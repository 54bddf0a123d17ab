package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
)

type createAccountRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Institution string `json:"institution" binding:"max=128"`
	Type        string `json:"type" binding:"required,oneof=checking savings credit investment"`
	Balance     string `json:"balance"`
}

type updateBalanceRequest struct {
	Balance string `json:"balance" binding:"required"`
}

func (s *Server) handleCreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	balance := decimal.Zero
	if req.Balance != "" {
		parsed, err := decimal.NewFromString(req.Balance)
		if err != nil {
			respondBadRequest(c, fmt.Errorf("invalid balance %q: %w", req.Balance, err))
			return
		}
		balance = parsed
	}

	account := &model.Account{
		ID:          uuid.New().String(),
		UserID:      currentUserID(c),
		Name:        req.Name,
		Institution: req.Institution,
		Type:        model.AccountType(req.Type),
		Balance:     balance,
	}

	if err := s.store.CreateAccount(c.Request.Context(), account); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (s *Server) handleListAccounts(c *gin.Context) {
	accounts, err := s.store.GetAccounts(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) handleGetAccount(c *gin.Context) {
	account, err := s.store.GetAccountByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) handleUpdateAccountBalance(c *gin.Context) {
	var req updateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid balance %q: %w", req.Balance, err))
		return
	}

	if err := s.store.UpdateAccountBalance(c.Request.Context(), currentUserID(c), c.Param("id"), balance); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleDeleteAccount removes an account. Its transactions survive with a
// cleared account reference.
func (s *Server) handleDeleteAccount(c *gin.Context) {
	if err := s.store.DeleteAccount(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
