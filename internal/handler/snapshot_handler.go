package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/pkg/response"
	"github.com/netly-app/netly/internal/service"
)

type SnapshotHandler struct {
	snapshots *service.SnapshotService
}

func NewSnapshotHandler(snapshots *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

type snapshotRequest struct {
	Date string `json:"date"`
}

func (h *SnapshotHandler) Create(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		invalidRequest(c, "")
		return
	}
	snapshot, err := h.snapshots.Create(c.Request.Context(), getUserID(c), req.Date)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, snapshot)
}

func (h *SnapshotHandler) List(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	snapshots, err := h.snapshots.ListRange(c.Request.Context(), getUserID(c), from, to)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, snapshots)
}

func (h *SnapshotHandler) Get(c *gin.Context) {
	detail, err := h.snapshots.GetDetail(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, detail)
}

// historyWeeks parses the optional ?weeks= parameter. Zero means "use the
// default window".
func historyWeeks(c *gin.Context) (int, bool) {
	raw := c.Query("weeks")
	if raw == "" {
		return 0, true
	}
	weeks, err := strconv.Atoi(raw)
	if err != nil || weeks < 0 {
		invalidRequest(c, "weeks must be a non-negative integer")
		return 0, false
	}
	return weeks, true
}

func (h *SnapshotHandler) History(c *gin.Context) {
	weeks, ok := historyWeeks(c)
	if !ok {
		return
	}
	history, err := h.snapshots.History(c.Request.Context(), getUserID(c), weeks)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, history)
}

func (h *SnapshotHandler) AssetHistory(c *gin.Context) {
	weeks, ok := historyWeeks(c)
	if !ok {
		return
	}
	history, err := h.snapshots.AssetHistory(c.Request.Context(), getUserID(c), c.Param("id"), weeks)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, history)
}

func (h *SnapshotHandler) AssetTypeHistory(c *gin.Context) {
	weeks, ok := historyWeeks(c)
	if !ok {
		return
	}
	history, err := h.snapshots.AssetTypeHistory(c.Request.Context(), getUserID(c), c.Param("name"), weeks)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, history)
}

func (h *SnapshotHandler) LiabilityHistory(c *gin.Context) {
	weeks, ok := historyWeeks(c)
	if !ok {
		return
	}
	history, err := h.snapshots.LiabilityHistory(c.Request.Context(), getUserID(c), c.Param("id"), weeks)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, history)
}

func (h *SnapshotHandler) LiabilityTypeHistory(c *gin.Context) {
	weeks, ok := historyWeeks(c)
	if !ok {
		return
	}
	history, err := h.snapshots.LiabilityTypeHistory(c.Request.Context(), getUserID(c), c.Param("name"), weeks)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, history)
}

func (h *SnapshotHandler) Delete(c *gin.Context) {
	if err := h.snapshots.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
