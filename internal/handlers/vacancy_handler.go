package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/jobscout/internal/services"
)

type VacancyHandler struct {
	Dataset *services.DatasetService
}

func NewVacancyHandler(dataset *services.DatasetService) *VacancyHandler {
	return &VacancyHandler{Dataset: dataset}
}

// Home is the GET / landing page.
func (h *VacancyHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "base.html", gin.H{})
}

// List is the GET /vacancies page: searchable, sortable, paginated view
// of the enriched dataset.
func (h *VacancyHandler) List(c *gin.Context) {
	search := c.Query("search")
	sortBy := c.Query("sort_by")
	order := c.DefaultQuery("order", "desc")
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 10)

	records, totalPages := h.Dataset.Page(search, sortBy, order, page, pageSize)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"records":    records,
		"columns":    h.Dataset.Columns(),
		"search":     search,
		"sortBy":     sortBy,
		"order":      order,
		"page":       page,
		"prevPage":   page - 1,
		"nextPage":   page + 1,
		"pageSize":   pageSize,
		"totalPages": totalPages,
		"total":      h.Dataset.Total(),
	})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
