package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type BudgetHandler struct {
	budget *service.BudgetService
}

func NewBudgetHandler(budget *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budget: budget}
}

func (h *BudgetHandler) Create(c *gin.Context) {
	var req service.BudgetItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	item, err := h.budget.Create(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *BudgetHandler) Update(c *gin.Context) {
	var req service.BudgetItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	item, err := h.budget.Update(c.Request.Context(), getUserID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.budget.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *BudgetHandler) Get(c *gin.Context) {
	item, err := h.budget.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *BudgetHandler) List(c *gin.Context) {
	items, err := h.budget.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *BudgetHandler) ListByType(c *gin.Context) {
	items, err := h.budget.ListByType(c.Request.Context(), getUserID(c), c.Param("type"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *BudgetHandler) Summary(c *gin.Context) {
	summary, err := h.budget.Summary(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}
