package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/advisor"
	googleauth "arknights-backend/internal/auth"
	"arknights-backend/internal/gamedata"
	"arknights-backend/internal/roster"
	"arknights-backend/internal/shared/config"
	"arknights-backend/internal/shared/metrics"
	"arknights-backend/internal/shared/server/middleware"
	"arknights-backend/internal/shared/server/respond"
	"arknights-backend/internal/squads"
	"arknights-backend/internal/teambuilder"
	"arknights-backend/internal/users"
	"arknights-backend/internal/weights"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	GameDataHandler *gamedata.Handler
	UsersHandler    *users.Handler
	RosterHandler   *roster.Handler
	WeightsHandler  *weights.Handler
	TeamHandler     *teambuilder.Handler
	SquadsHandler   *squads.Handler
	AdvisorHandler  *advisor.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet {
					return "READS"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"READS":   {Rate: 25, Burst: 100},
			},
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.GameDataHandler != nil {
		deps.GameDataHandler.RegisterRoutes(api)
	}
	if deps.RosterHandler != nil {
		deps.RosterHandler.RegisterRoutes(api)
	}
	if deps.WeightsHandler != nil {
		deps.WeightsHandler.RegisterRoutes(api)
	}
	if deps.TeamHandler != nil {
		deps.TeamHandler.RegisterRoutes(api)
	}
	if deps.SquadsHandler != nil {
		deps.SquadsHandler.RegisterRoutes(api)
	}
	if deps.AdvisorHandler != nil {
		deps.AdvisorHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
