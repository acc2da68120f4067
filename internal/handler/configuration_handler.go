package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type ConfigurationHandler struct {
	config *service.ConfigurationService
}

func NewConfigurationHandler(config *service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{config: config}
}

func (h *ConfigurationHandler) CreateCurrencyRate(c *gin.Context) {
	var req service.CurrencyRateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	rate, err := h.config.CreateCurrencyRate(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rate)
}

func (h *ConfigurationHandler) UpdateCurrencyRate(c *gin.Context) {
	var req service.CurrencyRateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	rate, err := h.config.UpdateCurrencyRate(c.Request.Context(), getUserID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rate)
}

func (h *ConfigurationHandler) DeleteCurrencyRate(c *gin.Context) {
	if err := h.config.DeleteCurrencyRate(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ConfigurationHandler) ListCurrencyRates(c *gin.Context) {
	rates, err := h.config.ListCurrencyRates(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rates)
}

type typeRequest struct {
	TypeName    string `json:"type_name"`
	DisplayName string `json:"display_name"`
}

func (h *ConfigurationHandler) ListAssetTypes(c *gin.Context) {
	types, err := h.config.ListAssetTypes(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, types)
}

func (h *ConfigurationHandler) CreateAssetType(c *gin.Context) {
	var req typeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	t, err := h.config.CreateAssetType(c.Request.Context(), getUserID(c), req.TypeName, req.DisplayName)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, t)
}

func (h *ConfigurationHandler) DeleteAssetType(c *gin.Context) {
	if err := h.config.DeleteAssetType(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ConfigurationHandler) ListLiabilityTypes(c *gin.Context) {
	types, err := h.config.ListLiabilityTypes(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, types)
}

func (h *ConfigurationHandler) CreateLiabilityType(c *gin.Context) {
	var req typeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	t, err := h.config.CreateLiabilityType(c.Request.Context(), getUserID(c), req.TypeName, req.DisplayName)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, t)
}

func (h *ConfigurationHandler) DeleteLiabilityType(c *gin.Context) {
	if err := h.config.DeleteLiabilityType(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
