package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/export"
	"github.com/hollis/pennyflow/internal/importer"
	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/rules"
	"github.com/hollis/pennyflow/internal/service"
)

type createTransactionRequest struct {
	AccountID   string `json:"account_id"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required,max=512"`
	Amount      string `json:"amount" binding:"required"`
	Direction   string `json:"direction" binding:"required,oneof=credit debit"`
}

type assignCategoryRequest struct {
	CategoryID int64 `json:"category_id" binding:"required"`
}

type confirmRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type suggestionResponse struct {
	Suggestion *rules.Suggestion `json:"suggestion"`
	Category   *model.Category   `json:"category"`
}

type importResponse struct {
	Parsed    int `json:"parsed"`
	Imported  int `json:"imported"`
	Suggested int `json:"suggested"`
}

func (s *Server) handleCreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid date %q: %w", req.Date, err))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid amount %q: %w", req.Amount, err))
		return
	}

	txn := model.Transaction{
		ID:          uuid.New().String(),
		UserID:      currentUserID(c),
		AccountID:   req.AccountID,
		Date:        date,
		Description: req.Description,
		Amount:      amount.Abs(),
		Direction:   model.Direction(req.Direction),
	}
	txn.Hash = txn.GenerateHash()

	saved, err := s.store.SaveTransactions(c.Request.Context(), []model.Transaction{txn})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if saved == 0 {
		c.JSON(http.StatusOK, gin.H{"duplicate": true})
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (s *Server) handleListTransactions(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	txns, err := s.store.GetTransactions(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (s *Server) handleGetTransaction(c *gin.Context) {
	txn, err := s.store.GetTransactionByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (s *Server) handleDeleteTransaction(c *gin.Context) {
	if err := s.store.DeleteTransaction(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleSuggestCategory runs the classifier against one stored transaction.
// A null suggestion in the response means no rule matched.
func (s *Server) handleSuggestCategory(c *gin.Context) {
	suggestion, category, err := s.engine.SuggestForTransaction(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestionResponse{Suggestion: suggestion, Category: category})
}

func (s *Server) handleAssignCategory(c *gin.Context) {
	var req assignCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.engine.AssignSuggestion(c.Request.Context(), currentUserID(c), c.Param("id"), req.CategoryID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleConfirmCategory(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.engine.Confirm(c.Request.Context(), currentUserID(c), c.Param("id"), *req.Approved); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleImportTransactions accepts a multipart statement upload (CSV or
// OFX/QFX), classifies the parsed transactions, and saves them with
// duplicate rows skipped.
func (s *Server) handleImportTransactions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, fmt.Errorf("missing statement file: %w", err))
		return
	}
	accountID := c.PostForm("account_id")

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	userID := currentUserID(c)
	txns, err := parseStatement(c.Request.Context(), file, fileHeader.Filename, userID, accountID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	suggested, err := s.engine.ClassifyBatch(c.Request.Context(), userID, txns)
	if err != nil {
		s.respondError(c, err)
		return
	}

	imported, err := s.store.SaveTransactions(c.Request.Context(), txns)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("statement imported",
		"user_id", userID,
		"file", fileHeader.Filename,
		"parsed", len(txns),
		"imported", imported,
		"suggested", suggested)

	c.JSON(http.StatusOK, importResponse{
		Parsed:    len(txns),
		Imported:  imported,
		Suggested: suggested,
	})
}

// handleExportTransactions streams the caller's transactions as an XLSX
// workbook, honoring the same filters as the list endpoint.
func (s *Server) handleExportTransactions(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	userID := currentUserID(c)
	txns, err := s.store.GetTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		s.respondError(c, err)
		return
	}

	categories, err := s.store.GetCategories(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteWorkbook(c.Writer, txns, names); err != nil {
		s.respondError(c, err)
		return
	}
}

func parseStatement(ctx context.Context, r io.Reader, filename, userID, accountID string) ([]model.Transaction, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ofx", ".qfx":
		return importer.NewOFXParser().Parse(ctx, r, userID, accountID)
	case ".csv":
		return importer.NewCSVParser().Parse(ctx, r, userID, accountID)
	default:
		return nil, fmt.Errorf("unsupported statement format %q", filepath.Ext(filename))
	}
}

func parseTransactionFilter(c *gin.Context) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date %q: %w", v, err)
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date %q: %w", v, err)
		}
		filter.EndDate = &t
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid category_id %q: %w", v, err)
		}
		filter.CategoryID = &id
	}
	filter.AccountID = c.Query("account_id")
	if v := c.Query("status"); v != "" {
		status := model.CategorizationStatus(strings.ToUpper(v))
		switch status {
		case model.StatusUnclassified, model.StatusSuggested, model.StatusValidated, model.StatusRejected:
			filter.Status = status
		default:
			return filter, fmt.Errorf("invalid status %q", v)
		}
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid limit %q", v)
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid offset %q", v)
		}
		filter.Offset = n
	}

	return filter, nil
}
