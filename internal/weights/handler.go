package weights

import (
	"net/http"

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
	rg.GET("/weights", h.get)
	rg.PUT("/weights", h.put)
}

func (h *Handler) get(c *gin.Context) {
	pools, err := h.Svc.Current(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load weight pools", nil)
		return
	}
	respond.JSON(c, http.StatusOK, pools)
}

func (h *Handler) put(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}
	var pools Pools
	if err := c.ShouldBindJSON(&pools); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed weight pools", err.Error())
		return
	}
	if err := h.Svc.Update(c.Request.Context(), pools); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, pools)
}
