package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
)

type upsertBudgetRequest struct {
	CategoryID int64  `json:"category_id" binding:"required"`
	Month      string `json:"month" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

type createGoalRequest struct {
	Name          string `json:"name" binding:"required,max=128"`
	TargetAmount  string `json:"target_amount" binding:"required"`
	CurrentAmount string `json:"current_amount"`
	TargetDate    string `json:"target_date"`
}

type updateGoalProgressRequest struct {
	CurrentAmount string `json:"current_amount" binding:"required"`
}

type createHoldingRequest struct {
	Name  string `json:"name" binding:"required,max=128"`
	Kind  string `json:"kind" binding:"required,oneof=asset liability"`
	Value string `json:"value" binding:"required"`
}

func parseAmountField(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return amount, nil
}

func (s *Server) handleUpsertBudget(c *gin.Context) {
	var req upsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if _, err := time.Parse("2006-01", req.Month); err != nil {
		respondBadRequest(c, fmt.Errorf("invalid month %q: %w", req.Month, err))
		return
	}
	amount, err := parseAmountField("amount", req.Amount)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	budget := &model.Budget{
		UserID:     currentUserID(c),
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Amount:     amount,
	}
	if err := s.store.UpsertBudget(c.Request.Context(), budget); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (s *Server) handleListBudgets(c *gin.Context) {
	budgets, err := s.store.GetBudgets(c.Request.Context(), currentUserID(c), reportMonth(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (s *Server) handleDeleteBudget(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := s.store.DeleteBudget(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCreateGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	target, err := parseAmountField("target_amount", req.TargetAmount)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	current := decimal.Zero
	if req.CurrentAmount != "" {
		current, err = parseAmountField("current_amount", req.CurrentAmount)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
	}

	goal := &model.Goal{
		UserID:        currentUserID(c),
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
	}
	if req.TargetDate != "" {
		date, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			respondBadRequest(c, fmt.Errorf("invalid target_date %q: %w", req.TargetDate, err))
			return
		}
		goal.TargetDate = &date
	}

	if err := s.store.CreateGoal(c.Request.Context(), goal); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) handleListGoals(c *gin.Context) {
	goals, err := s.store.GetGoals(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Server) handleUpdateGoalProgress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var req updateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	current, err := parseAmountField("current_amount", req.CurrentAmount)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.store.UpdateGoalProgress(c.Request.Context(), currentUserID(c), id, current); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteGoal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := s.store.DeleteGoal(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCreateHolding(c *gin.Context) {
	var req createHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	value, err := parseAmountField("value", req.Value)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	holding := &model.Holding{
		UserID: currentUserID(c),
		Name:   req.Name,
		Kind:   model.HoldingKind(req.Kind),
		Value:  value,
	}
	if err := s.store.CreateHolding(c.Request.Context(), holding); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holding)
}

func (s *Server) handleListHoldings(c *gin.Context) {
	holdings, err := s.store.GetHoldings(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, holdings)
}

func (s *Server) handleDeleteHolding(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := s.store.DeleteHolding(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
