package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var errInvalidMonths = errors.New("months must be between 1 and 36")

// reportMonth returns the month query parameter, defaulting to the current
// calendar month.
func reportMonth(c *gin.Context) string {
	if month := c.Query("month"); month != "" {
		return month
	}
	return time.Now().Format("2006-01")
}

func (s *Server) handleOverview(c *gin.Context) {
	overview, err := s.reports.GenerateOverview(c.Request.Context(), currentUserID(c), reportMonth(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) handleBreakdown(c *gin.Context) {
	breakdown, err := s.reports.CategoryBreakdown(c.Request.Context(), currentUserID(c), reportMonth(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (s *Server) handleTrend(c *gin.Context) {
	months := 6
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 36 {
			respondBadRequest(c, errInvalidMonths)
			return
		}
		months = n
	}

	trend, err := s.reports.MonthlyTrend(c.Request.Context(), currentUserID(c), reportMonth(c), months)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (s *Server) handleBudgetProgress(c *gin.Context) {
	progress, err := s.reports.BudgetProgress(c.Request.Context(), currentUserID(c), reportMonth(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (s *Server) handleNetWorth(c *gin.Context) {
	summary, err := s.reports.NetWorth(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
