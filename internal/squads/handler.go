package squads

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/gamedata"
	"arknights-backend/internal/shared/metrics"
	"arknights-backend/internal/shared/server/middleware"
	"arknights-backend/internal/shared/server/respond"
	"arknights-backend/internal/weights"
)

// RosterSource provides the caller's owned operator ids when the request
// body does not override them.
type RosterSource interface {
	OwnedOperatorIDs(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	Store   *gamedata.Store
	Weights *weights.Service
	Svc     *Service
	Roster  RosterSource
}

func NewHandler(store *gamedata.Store, weightsSvc *weights.Service, svc *Service, roster RosterSource) *Handler {
	return &Handler{Store: store, Weights: weightsSvc, Svc: svc, Roster: roster}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/squads/recommend", h.recommend)
	rg.GET("/squads/presets/:isId", h.listPresets)
	rg.PUT("/squads/presets/:isId", h.putPresets)
}

type recommendRequest struct {
	ISID  string   `json:"isId"`
	Owned []string `json:"owned,omitempty"`
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed request", err.Error())
		return
	}
	if req.ISID == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "isId is required", nil)
		return
	}

	ctx := c.Request.Context()
	owned := req.Owned
	if owned == nil && h.Roster != nil {
		if userID, ok := middleware.UserIDFromContext(c); ok {
			var err error
			owned, err = h.Roster.OwnedOperatorIDs(ctx, userID)
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load roster", nil)
				return
			}
		}
	}

	pools, err := h.Weights.Current(ctx)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load weight pools", nil)
		return
	}

	snapshot := h.Store.Snapshot()
	strengths := ClassStrengths(snapshot, pools, owned)

	presets, err := h.Svc.PresetsFor(ctx, req.ISID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load presets", nil)
		return
	}

	recommendation := Recommend(presets, strengths)
	metrics.IncSquadRecommendation()
	respond.JSON(c, http.StatusOK, gin.H{
		"classStrengths": strengths,
		"recommendation": recommendation,
	})
}

func (h *Handler) listPresets(c *gin.Context) {
	presets, err := h.Svc.PresetsFor(c.Request.Context(), c.Param("isId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no presets for mode", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load presets", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"presets": presets})
}

func (h *Handler) putPresets(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}
	var presets []Preset
	if err := c.ShouldBindJSON(&presets); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed presets", err.Error())
		return
	}
	if err := h.Svc.Update(c.Request.Context(), c.Param("isId"), presets); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"presets": presets})
}
