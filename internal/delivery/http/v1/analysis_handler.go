package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type AnalysisHandler struct {
	analysisUC domain.AnalysisUsecase
}

func NewAnalysisHandler(rg *gin.RouterGroup, analysisUC domain.AnalysisUsecase) {
	handler := &AnalysisHandler{analysisUC: analysisUC}

	ai := rg.Group("/analyze")
	{
		ai.POST("", handler.Submit)
		ai.GET("/state", handler.State)
		ai.POST("/reset", handler.Reset)
	}
}

func (h *AnalysisHandler) Submit(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.Validation("A resume file is required"))
		return
	}

	jobID, err := strconv.ParseInt(c.PostForm("job_id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("job_id must be an integer"))
		return
	}
	generateCover := c.PostForm("generate_cover") == "true"

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	result, err := h.analysisUC.Submit(c.Request.Context(), domain.ResumeSubmission{
		JobID:         jobID,
		FileName:      fileHeader.Filename,
		FileSize:      fileHeader.Size,
		File:          file,
		GenerateCover: generateCover,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Analysis complete", result)
}

func (h *AnalysisHandler) State(c *gin.Context) {
	data := gin.H{"state": h.analysisUC.State().String()}
	if result := h.analysisUC.Result(); result != nil {
		data["result"] = result
	}
	if failure := h.analysisUC.Failure(); failure != nil {
		data["failure"] = failure.Error()
	}
	response.Success(c, http.StatusOK, "Analysis state", data)
}

func (h *AnalysisHandler) Reset(c *gin.Context) {
	h.analysisUC.Reset()
	response.Success(c, http.StatusOK, "Analysis reset", nil)
}
