package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type CatalogHandler struct {
	catalogUC domain.CatalogUsecase
}

func NewCatalogHandler(rg *gin.RouterGroup, catalogUC domain.CatalogUsecase) {
	handler := &CatalogHandler{catalogUC: catalogUC}

	jobs := rg.Group("/jobs")
	{
		jobs.GET("", handler.Search)
		jobs.POST("/next", handler.Next)
		jobs.POST("/prev", handler.Prev)
		jobs.POST("/refresh", handler.Refresh)
	}
}

// Search applies the query-string filters to the engine. The engine resets
// the cursor and fetches only when a filter field actually changed.
func (h *CatalogHandler) Search(c *gin.Context) {
	remote := domain.RemoteMode(c.DefaultQuery("remote", string(domain.RemoteAny)))

	if sizeStr := c.Query("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			c.Error(apperror.Validation("page_size must be an integer"))
			return
		}
		if _, err := h.catalogUC.SetPageSize(c.Request.Context(), size); err != nil {
			c.Error(err)
			return
		}
	}

	page, err := h.catalogUC.SetFilters(c.Request.Context(),
		c.Query("q"), c.Query("skill"), c.Query("location"), remote)
	if err != nil {
		c.Error(err)
		return
	}
	if page == nil {
		// No fetch has happened yet for this filter state
		page, err = h.catalogUC.Refresh(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
	}

	response.Success(c, http.StatusOK, "Job catalog page", page)
}

func (h *CatalogHandler) Next(c *gin.Context) {
	page, err := h.catalogUC.NextPage(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job catalog page", page)
}

func (h *CatalogHandler) Prev(c *gin.Context) {
	page, err := h.catalogUC.PrevPage(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job catalog page", page)
}

func (h *CatalogHandler) Refresh(c *gin.Context) {
	page, err := h.catalogUC.Refresh(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job catalog page", page)
}
