package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"arknights-backend/internal/advisor"
	googleauth "arknights-backend/internal/auth"
	"arknights-backend/internal/gamedata"
	"arknights-backend/internal/roster"
	"arknights-backend/internal/shared/config"
	"arknights-backend/internal/shared/server"
	"arknights-backend/internal/shared/storage/db"
	"arknights-backend/internal/shared/telemetry"
	"arknights-backend/internal/squads"
	"arknights-backend/internal/teambuilder"
	"arknights-backend/internal/users"
	"arknights-backend/internal/weights"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  *gamedata.Store

	UsersRepo   users.Repo
	RosterRepo  roster.Repo
	WeightsRepo weights.Repo
	SquadsRepo  squads.Repo

	UsersService   *users.Service
	RosterService  *roster.Service
	WeightsService *weights.Service
	SquadsService  *squads.Service

	GameDataHandler *gamedata.Handler
	UsersHandler    *users.Handler
	RosterHandler   *roster.Handler
	WeightsHandler  *weights.Handler
	TeamHandler     *teambuilder.Handler
	SquadsHandler   *squads.Handler
	AdvisorHandler  *advisor.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := gamedata.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load game data: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		GameDataHandler: app.GameDataHandler,
		UsersHandler:    app.UsersHandler,
		RosterHandler:   app.RosterHandler,
		WeightsHandler:  app.WeightsHandler,
		TeamHandler:     app.TeamHandler,
		SquadsHandler:   app.SquadsHandler,
		AdvisorHandler:  app.AdvisorHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

// WatchData reloads game data when the files on disk change. It blocks
// until ctx is cancelled.
func (a *App) WatchData(ctx context.Context) {
	if err := a.Store.Watch(ctx); err != nil && ctx.Err() == nil {
		telemetry.Error("gamedata.watch_failed", map[string]any{"error": err.Error()})
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.RosterRepo = &roster.PGRepo{DB: app.DB}
		app.WeightsRepo = &weights.PGRepo{DB: app.DB}
		app.SquadsRepo = &squads.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.RosterRepo = roster.NewMemoryRepo()
		app.WeightsRepo = weights.NewMemoryRepo()
		app.SquadsRepo = squads.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.RosterService = roster.NewService(app.RosterRepo)
	app.RosterService.KnownOperator = func(id string) bool {
		_, ok := app.Store.Snapshot().Operator(id)
		return ok
	}
	app.WeightsService = weights.NewService(app.WeightsRepo)
	app.SquadsService = squads.NewService(app.SquadsRepo)

	app.GameDataHandler = gamedata.NewHandler(app.Store)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.RosterHandler = roster.NewHandler(app.RosterService)
	app.WeightsHandler = weights.NewHandler(app.WeightsService)
	app.TeamHandler = teambuilder.NewHandler(app.Store, app.RosterService)
	app.SquadsHandler = squads.NewHandler(app.Store, app.WeightsService, app.SquadsService, app.RosterService)
	app.AdvisorHandler = advisor.NewHandler(app.Store, app.RosterService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}
