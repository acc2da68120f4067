package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type AssetHandler struct {
	assets *service.AssetService
}

func NewAssetHandler(assets *service.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req service.AssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	asset, err := h.assets.Create(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, asset)
}

func (h *AssetHandler) Update(c *gin.Context) {
	var req service.AssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "")
		return
	}
	asset, err := h.assets.Update(c.Request.Context(), getUserID(c), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, asset)
}

func (h *AssetHandler) Delete(c *gin.Context) {
	if err := h.assets.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *AssetHandler) Get(c *gin.Context) {
	asset, err := h.assets.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, asset)
}

func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assets.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, assets)
}

func (h *AssetHandler) Summary(c *gin.Context) {
	summary, err := h.assets.Summary(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}
