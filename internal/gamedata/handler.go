package gamedata

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/shared/server/respond"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/operators", h.listOperators)
	rg.GET("/operators/:id", h.getOperator)
	rg.GET("/operators/:id/rankings", h.getOperatorRankings)
	rg.GET("/niches", h.listNiches)
	rg.GET("/niches/:code", h.getNiche)
}

func (h *Handler) listOperators(c *gin.Context) {
	snapshot := h.Store.Snapshot()
	respond.JSON(c, http.StatusOK, gin.H{"operators": snapshot.Operators()})
}

func (h *Handler) getOperator(c *gin.Context) {
	snapshot := h.Store.Snapshot()
	op, ok := snapshot.Operator(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "operator not found", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"operator": op,
		"niches":   snapshot.NichesForOperator(op.ID),
	})
}

func (h *Handler) getOperatorRankings(c *gin.Context) {
	snapshot := h.Store.Snapshot()
	id := c.Param("id")
	if _, ok := snapshot.Operator(id); !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "operator not found", nil)
		return
	}
	rankings := snapshot.OperatorRankings(id)
	if rankings == nil {
		rankings = []Ranking{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"operatorId": id, "rankings": rankings})
}

func (h *Handler) listNiches(c *gin.Context) {
	snapshot := h.Store.Snapshot()
	respond.JSON(c, http.StatusOK, gin.H{"niches": snapshot.NicheCodes()})
}

func (h *Handler) getNiche(c *gin.Context) {
	snapshot := h.Store.Snapshot()
	niche, ok := snapshot.Niche(c.Param("code"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "niche not found", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"niche": niche})
}
