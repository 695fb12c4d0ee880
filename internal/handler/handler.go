package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"time-warp/internal/models"
	"time-warp/internal/service"
	"time-warp/internal/timeutil"
	"time-warp/internal/timewarp"
)

// Handler handles all HTTP requests
type Handler struct {
	runner *service.CommandRunner
	warps  *service.WarpService
	travel *service.TravelService
}

// NewHandler creates a new Handler
func NewHandler(runner *service.CommandRunner, warps *service.WarpService, travel *service.TravelService) *Handler {
	return &Handler{runner: runner, warps: warps, travel: travel}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/now", h.GetNow)
		api.POST("/travel", h.Travel)
		api.POST("/warps", h.CreateWarp)
		api.GET("/warps", h.ListWarps)
		api.DELETE("/warps/:id", h.DeleteWarp)
	}
}

// GetNow returns the current real time.
// GET /api/now
func (h *Handler) GetNow(c *gin.Context) {
	now := timeutil.Now(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"now":      timeutil.Format(now),
		"epoch_ms": now.UnixMilli(),
	})
}

// TravelRequest represents the request body for running a command under an override
type TravelRequest struct {
	Mode    string   `json:"mode" binding:"required"`
	Value   string   `json:"value" binding:"required"`
	Command []string `json:"command" binding:"required"`
}

// Travel runs a command under a temporal override.
// POST /api/travel
func (h *Handler) Travel(c *gin.Context) {
	var req TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: mode, value and command are required",
		})
		return
	}

	ctx := c.Request.Context()

	var effective models.OverrideDescriptor
	var err error
	if strings.EqualFold(req.Mode, "warp") {
		effective, err = h.travel.ResolveWarp(ctx, req.Value)
	} else {
		effective, err = h.travel.Resolve(ctx, req.Mode, req.Value)
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	args := append([]string{"travel", req.Mode, req.Value}, req.Command...)
	output, err := h.runner.Execute(ctx, args)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	// Report the time the command ran under: constant for an absolute
	// override, read at response time for a relative one.
	now := timeutil.Now(timewarp.WithOverride(ctx, effective))
	c.JSON(http.StatusOK, gin.H{
		"output":         output,
		"effective_mode": effective.Mode.String(),
		"effective_time": timeutil.Format(now),
		"epoch_ms":       now.UnixMilli(),
	})
}

// CreateWarpRequest represents the request body for creating a warp point
type CreateWarpRequest struct {
	ID          string `json:"id" binding:"required"`
	Mode        string `json:"mode" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// CreateWarp creates a named warp point.
// POST /api/warps
func (h *Handler) CreateWarp(c *gin.Context) {
	var req CreateWarpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: id, mode and value are required",
		})
		return
	}

	wp, err := h.warps.Create(c.Request.Context(), req.ID, req.Mode, req.Value, req.Description)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Warp point created",
		"warp":    wp,
	})
}

// ListWarps returns all warp points.
// GET /api/warps
func (h *Handler) ListWarps(c *gin.Context) {
	warps, err := h.warps.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list warp points: " + err.Error(),
		})
		return
	}
	if warps == nil {
		warps = []models.WarpPoint{}
	}
	c.JSON(http.StatusOK, gin.H{"warps": warps})
}

// DeleteWarp removes a warp point.
// DELETE /api/warps/:id
func (h *Handler) DeleteWarp(c *gin.Context) {
	if err := h.warps.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Warp point deleted"})
}

// statusFor maps domain failures to HTTP status codes. Everything here is a
// terminal user-input/state error, never retried.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrWarpNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrWarpExists):
		return http.StatusConflict
	case errors.Is(err, timewarp.ErrNestedRelative):
		return http.StatusConflict
	case errors.Is(err, timewarp.ErrInvalidMode),
		errors.Is(err, timewarp.ErrInvalidTarget),
		errors.Is(err, timewarp.ErrInvalidDelta):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
