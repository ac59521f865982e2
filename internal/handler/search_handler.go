package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// SearchHandler serves the two ranked search modes and the public top list
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Aligned serves GET /search/a?query&page&limit
func (h *SearchHandler) Aligned(c *gin.Context) {
	query := c.Query("query")
	page, limit := parsePagination(c)
	requesterID := c.GetString(ContextUserID)

	results, err := h.searchService.Aligned(c.Request.Context(), requesterID, query, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.NewUserResponses(results), "Search results fetched successfully")
}

// Unaligned serves GET /search/s?query&page&limit
func (h *SearchHandler) Unaligned(c *gin.Context) {
	query := c.Query("query")
	page, limit := parsePagination(c)
	requesterID := c.GetString(ContextUserID)

	results, err := h.searchService.Unaligned(c.Request.Context(), requesterID, query, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.NewUserResponses(results), "Search results fetched successfully")
}

// ExploreTop serves GET /explore-top, public
func (h *SearchHandler) ExploreTop(c *gin.Context) {
	top, err := h.searchService.TopProfiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, top, "Top profiles fetched successfully")
}

// parsePagination reads page and limit query params; anything non-numeric or
// missing falls back to the defaults. There is no upper bound on limit.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	return page, limit
}
