package roster

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/shared/server/middleware"
	"arknights-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roster", h.list)
	rg.PUT("/roster/:operatorId", h.set)
	rg.POST("/roster/import", h.importOwned)
	rg.GET("/roster/changelog", h.changelog)
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "sign in to view your roster", nil)
		return
	}
	marks, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load roster", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"roster": marks})
}

func (h *Handler) set(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "sign in to edit your roster", nil)
		return
	}
	var upd MarkUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}
	mark, err := h.Svc.Set(c.Request.Context(), userID, c.Param("operatorId"), upd)
	if err != nil {
		if errors.Is(err, ErrUnknownOperator) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown operator id", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, mark)
}

type importRequest struct {
	OperatorIDs []string `json:"operatorIds"`
}

func (h *Handler) importOwned(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "sign in to import a roster", nil)
		return
	}
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}
	changed, err := h.Svc.Import(c.Request.Context(), userID, req.OperatorIDs)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "import failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"imported": changed})
}

func (h *Handler) changelog(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "sign in to view your changelog", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.Svc.Changelog(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load changelog", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"changes": entries})
}
