package advisor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/gamedata"
	"arknights-backend/internal/shared/metrics"
	"arknights-backend/internal/shared/server/middleware"
	"arknights-backend/internal/shared/server/respond"
)

// RosterSource supplies raised operator ids when a request omits them.
type RosterSource interface {
	RaisedOperatorIDs(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	Store  *gamedata.Store
	Roster RosterSource
}

func NewHandler(store *gamedata.Store, roster RosterSource) *Handler {
	return &Handler{Store: store, Roster: roster}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/advisor/next", h.recommendNext)
}

type recommendRequest struct {
	Raised  []string `json:"raised"`
	Team    []string `json:"team"`
	Classes []string `json:"classes"`
	ExtraID string   `json:"extraId"`
}

func (h *Handler) recommendNext(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}

	raised := req.Raised
	if raised == nil && h.Roster != nil {
		if userID, ok := middleware.UserIDFromContext(c); ok {
			ids, err := h.Roster.RaisedOperatorIDs(c.Request.Context(), userID)
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, "roster_unavailable", "could not load your roster", nil)
				return
			}
			raised = ids
		}
	}

	snapshot := h.Store.Snapshot()
	rec := RecommendNext(snapshot, raised, req.Team, req.Classes, req.ExtraID)
	metrics.IncAdvisorPick()
	respond.JSON(c, http.StatusOK, rec)
}
