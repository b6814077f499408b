package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/crops"
	"resume-builder/internal/export"
	"resume-builder/internal/imports"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/templates"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	Store              object.ObjectStore
	ResumesRepo        resumes.Repo
	CropsRepo          *crops.MemoryRepo
	ResumesService     *resumes.Service
	CropsService       *crops.Service
	Importer           *imports.Importer
	SuggestionEngine   *suggestions.Engine
	ExportService      *export.Service
	ResumesHandler     *resumes.Handler
	CropsHandler       *crops.Handler
	TemplatesHandler   *templates.Handler
	ImportsHandler     *imports.Handler
	SuggestionsHandler *suggestions.Handler
	ExportHandler      *export.Handler
	RateLimiter        *middleware.RateLimiter
}

// idleBucket is how long a guest's rate limit bucket survives without traffic.
const idleBucket = 10 * time.Minute

// Build prepares dependencies and wires routes. Background work is started
// separately with Start.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.RateLimiter = middleware.NewRateLimiter(nil)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Health:            health.NewService(app.CropsRepo),
		CropHandler:       app.CropsHandler,
		ResumeHandler:     app.ResumesHandler,
		TemplateHandler:   app.TemplatesHandler,
		ImportHandler:     app.ImportsHandler,
		SuggestionHandler: app.SuggestionsHandler,
		ExportHandler:     app.ExportHandler,
		RateLimiter:       app.RateLimiter,
	})

	return app, nil
}

// Start launches background maintenance until ctx is done.
func (a *App) Start(ctx context.Context) {
	a.CropsService.StartSweeper(ctx)
	go func() {
		ticker := time.NewTicker(idleBucket)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.RateLimiter.Prune(idleBucket)
			}
		}
	}()
}

func buildStore(cfg config.Config) (object.ObjectStore, error) {
	dir := strings.TrimSpace(cfg.LocalStoreDir)
	if dir == "" {
		return nil, errors.New("LOCAL_STORE_DIR is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local store dir: %w", err)
	}
	return localstore.New(dir), nil
}

func buildServices(app *App) error {
	resumeRepo := resumes.NewMemoryRepo()
	cropRepo := crops.NewMemoryRepo()

	resumeSvc := resumes.NewService(resumeRepo)
	cropSvc := crops.NewService(cropRepo, app.Store, resumeSvc, app.Config.CropSessionTTL)
	importer := imports.NewImporter(app.Config.ImportDelay)
	engine := suggestions.NewEngine(app.Config.SuggestionDelay)
	exportSvc := export.NewService(resumeSvc, app.Store)
	resumeSvc.OnDelete(engine.Forget)

	app.ResumesRepo = resumeRepo
	app.CropsRepo = cropRepo
	app.ResumesService = resumeSvc
	app.CropsService = cropSvc
	app.Importer = importer
	app.SuggestionEngine = engine
	app.ExportService = exportSvc
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.CropsHandler = crops.NewHandler(cropSvc)
	app.TemplatesHandler = templates.NewHandler()
	app.ImportsHandler = imports.NewHandler(importer, resumeSvc)
	app.SuggestionsHandler = suggestions.NewHandler(engine, resumeSvc)
	app.ExportHandler = export.NewHandler(exportSvc)

	if app.ResumesHandler == nil || app.CropsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
