package teambuilder

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/gamedata"
	"arknights-backend/internal/shared/metrics"
	"arknights-backend/internal/shared/server/middleware"
	"arknights-backend/internal/shared/server/respond"
)

// RosterSource provides the caller's owned and want-to-use operator ids
// when the request body does not override them.
type RosterSource interface {
	OwnedOperatorIDs(ctx context.Context, userID string) ([]string, error)
	WantToUseOperatorIDs(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	Store  *gamedata.Store
	Roster RosterSource
}

func NewHandler(store *gamedata.Store, roster RosterSource) *Handler {
	return &Handler{Store: store, Roster: roster}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/team/build", h.build)
}

type buildRequest struct {
	Preferences
	Owned     []string `json:"owned,omitempty"`
	WantToUse []string `json:"wantToUse,omitempty"`
}

func (h *Handler) build(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed preferences", err.Error())
		return
	}
	if err := validateRanges(req.Required); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	if err := validateRanges(req.Preferred); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	owned := req.Owned
	wantToUse := req.WantToUse
	if owned == nil && h.Roster != nil {
		if userID, ok := middleware.UserIDFromContext(c); ok {
			var err error
			owned, err = h.Roster.OwnedOperatorIDs(ctx, userID)
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load roster", nil)
				return
			}
			if wantToUse == nil {
				wantToUse, err = h.Roster.WantToUseOperatorIDs(ctx, userID)
				if err != nil {
					respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load roster", nil)
					return
				}
			}
		}
	}

	snapshot := h.Store.Snapshot()
	builder := NewBuilder(snapshot, snapshot.TrashOperators())
	started := time.Now()
	result := builder.Build(owned, wantToUse, req.Preferences)
	metrics.IncTeamBuild()
	metrics.ObserveTeamBuildDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	respond.JSON(c, http.StatusOK, result)
}

func validateRanges(quotas map[string]Range) error {
	for niche, r := range quotas {
		if r.Min < 0 || r.Max < 0 {
			return &rangeError{niche: niche, reason: "min and max must be non-negative"}
		}
		if r.Max < r.Min {
			return &rangeError{niche: niche, reason: "max must not be below min"}
		}
	}
	return nil
}

type rangeError struct {
	niche  string
	reason string
}

func (e *rangeError) Error() string {
	return "niche " + e.niche + ": " + e.reason
}
