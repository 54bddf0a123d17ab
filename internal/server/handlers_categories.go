package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type upsertCategoryRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	Icon string `json:"icon" binding:"max=16"`
}

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.store.GetCategories(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// handleUpsertCategory creates a category or refreshes the icon of an
// existing one with the same name. Either way the persisted row is returned.
func (s *Server) handleUpsertCategory(c *gin.Context) {
	var req upsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := s.store.UpsertCategory(c.Request.Context(), currentUserID(c), req.Name, req.Icon)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// handleDeleteCategory removes a category. Transactions that referenced it
// keep their review state but lose the category link.
func (s *Server) handleDeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.store.DeleteCategory(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleProvisionDefaults materializes the built-in rule categories for the
// caller. Idempotent; existing categories keep their IDs.
func (s *Server) handleProvisionDefaults(c *gin.Context) {
	mapping, err := s.engine.EnsureDefaultCategories(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}
