package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports that the server is up.
// GET /health
func (s *Server) Health(c *gin.Context) {
	writeOK(c, gin.H{
		"status":  "OK",
		"service": "toolshelf",
	})
}

// ListItems returns every item in the catalog.
// GET /api/v1/items
func (s *Server) ListItems(c *gin.Context) {
	items, err := s.catalog.ItemRepository().ListItems(c.Request.Context())
	if s.handleError(c, err) {
		return
	}
	writeOK(c, toItemListResponse(items))
}

// GetItem returns a single item.
// GET /api/v1/items/:id
func (s *Server) GetItem(c *gin.Context) {
	id := c.Param("id")
	if err := s.val.Var(id, "required,max=256"); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	item, err := s.catalog.ItemRepository().GetItem(c.Request.Context(), id)
	if s.handleError(c, err) {
		return
	}
	writeOK(c, toItemResponse(item))
}

// FilterItems applies structured AND/OR conditions.
// POST /api/v1/items/filter
func (s *Server) FilterItems(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := s.val.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	items, err := s.catalog.Filter(c.Request.Context(), req.toConditions())
	if s.handleError(c, err) {
		return
	}
	writeOK(c, toItemListResponse(items))
}

// SearchItems ranks the catalog against a natural-language query.
// POST /api/v1/items/search
func (s *Server) SearchItems(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := s.val.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	outcome, err := s.catalog.SearchWithDetails(c.Request.Context(), req.Query)
	if s.handleError(c, err) {
		return
	}
	writeOK(c, toSearchResponse(outcome))
}
