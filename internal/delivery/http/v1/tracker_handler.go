package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type TrackerHandler struct {
	trackerUC domain.TrackerUsecase
	exportUC  domain.ExportUsecase
}

func NewTrackerHandler(rg *gin.RouterGroup, trackerUC domain.TrackerUsecase, exportUC domain.ExportUsecase) {
	handler := &TrackerHandler{trackerUC: trackerUC, exportUC: exportUC}

	apps := rg.Group("/applications")
	{
		apps.POST("", handler.Track)
		apps.GET("", handler.List)
		apps.GET("/stats", handler.Stats)
		apps.GET("/export", handler.Export)
		apps.POST("/reload", handler.Reload)
		apps.PATCH("/:id", handler.Update)
		apps.DELETE("/:id", handler.Remove)
	}
}

type TrackRequest struct {
	JobID int64 `json:"job_id" binding:"required"`
}

func (h *TrackerHandler) Track(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	app, err := h.trackerUC.Track(c.Request.Context(), req.JobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Tracking application", app)
}

func (h *TrackerHandler) List(c *gin.Context) {
	filter := c.DefaultQuery("status", domain.StatusAll)
	if filter != domain.StatusAll && !domain.ValidStatus(filter) {
		c.Error(apperror.Validation("Unknown status filter"))
		return
	}
	response.Success(c, http.StatusOK, "Tracked applications", h.trackerUC.List(filter))
}

func (h *TrackerHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, "Application stats", h.trackerUC.Stats())
}

func (h *TrackerHandler) Reload(c *gin.Context) {
	if err := h.trackerUC.Load(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tracked applications reloaded", h.trackerUC.List(domain.StatusAll))
}

type UpdateApplicationRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *TrackerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Application id must be an integer"))
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}
	if req.Status == nil && req.Notes == nil {
		c.Error(apperror.Validation("Provide a status or notes to update"))
		return
	}

	ctx := c.Request.Context()
	if req.Status != nil {
		if err := h.trackerUC.UpdateStatus(ctx, id, *req.Status); err != nil {
			c.Error(err)
			return
		}
	}
	if req.Notes != nil {
		if err := h.trackerUC.UpdateNotes(ctx, id, *req.Notes); err != nil {
			c.Error(err)
			return
		}
	}

	response.Success(c, http.StatusOK, "Application updated", gin.H{"stats": h.trackerUC.Stats()})
}

// Remove requires an explicit confirm flag: deletion is irreversible and the
// confirmation prompt lives at this call boundary, not inside the tracker.
func (h *TrackerHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Application id must be an integer"))
		return
	}
	if c.Query("confirm") != "true" {
		c.Error(apperror.Validation("Removal must be confirmed with confirm=true"))
		return
	}

	if err := h.trackerUC.Remove(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application removed", gin.H{"stats": h.trackerUC.Stats()})
}

func (h *TrackerHandler) Export(c *gin.Context) {
	data, err := h.exportUC.ExportXLSX()
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="applications.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
