package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/config"
	"go-jobsearch-agent/internal/delivery/http/middleware"
	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/internal/domain"
)

type RouterDeps struct {
	SessionUC  domain.SessionUsecase
	CatalogUC  domain.CatalogUsecase
	TrackerUC  domain.TrackerUsecase
	AnalysisUC domain.AnalysisUsecase
	BillingUC  domain.BillingUsecase
	ExportUC   domain.ExportUsecase
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Agent operational", gin.H{
			"backend": deps.Config.APIBaseURL,
		})
	})

	NewAuthHandler(v1, deps.SessionUC)
	NewCatalogHandler(v1, deps.CatalogUC)
	NewTrackerHandler(v1, deps.TrackerUC, deps.ExportUC)
	NewAnalysisHandler(v1, deps.AnalysisUC)
	NewBillingHandler(v1, deps.BillingUC)

	return r
}
