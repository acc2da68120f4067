package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type ReportHandler struct {
	reporting *service.ReportingService
}

func NewReportHandler(reporting *service.ReportingService) *ReportHandler {
	return &ReportHandler{reporting: reporting}
}

// SendPortfolio queues the portfolio report email for the caller. Delivery
// is asynchronous; success here means queued.
func (h *ReportHandler) SendPortfolio(c *gin.Context) {
	if err := h.reporting.SendPortfolioReport(c.Request.Context(), getUserID(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"queued": true})
}

func (h *ReportHandler) SendBudget(c *gin.Context) {
	if err := h.reporting.SendBudgetReport(c.Request.Context(), getUserID(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"queued": true})
}
