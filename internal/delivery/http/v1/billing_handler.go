package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/internal/domain"
)

type BillingHandler struct {
	billingUC domain.BillingUsecase
}

func NewBillingHandler(rg *gin.RouterGroup, billingUC domain.BillingUsecase) {
	handler := &BillingHandler{billingUC: billingUC}

	billing := rg.Group("/billing")
	{
		billing.POST("/checkout", handler.Checkout)
		billing.POST("/portal", handler.Portal)
	}
}

func (h *BillingHandler) Checkout(c *gin.Context) {
	url, err := h.billingUC.CheckoutURL(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Checkout session created", gin.H{"url": url})
}

func (h *BillingHandler) Portal(c *gin.Context) {
	url, err := h.billingUC.PortalURL(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Billing portal session created", gin.H{"url": url})
}
