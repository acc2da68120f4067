package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type LiabilityHandler struct {
	liabilities *service.LiabilityService
}

func NewLiabilityHandler(liabilities *service.LiabilityService) *LiabilityHandler {
	return &LiabilityHandler{liabilities: liabilities}
}

func (h *LiabilityHandler) Create(c *gin.Context) {
	var req service.LiabilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	liability, err := h.liabilities.Create(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, liability)
}

func (h *LiabilityHandler) Update(c *gin.Context) {
	var req service.LiabilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	liability, err := h.liabilities.Update(c.Request.Context(), getUserID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, liability)
}

func (h *LiabilityHandler) Delete(c *gin.Context) {
	if err := h.liabilities.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *LiabilityHandler) Get(c *gin.Context) {
	liability, err := h.liabilities.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, liability)
}

func (h *LiabilityHandler) List(c *gin.Context) {
	liabilities, err := h.liabilities.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, liabilities)
}

func (h *LiabilityHandler) Summary(c *gin.Context) {
	summary, err := h.liabilities.Summary(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}
