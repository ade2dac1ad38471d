// Package folio is a local authoring server for portfolio project pages.
// Each browser session gets its own in-memory workspace holding the project
// form, theme and content blocks; the server validates, assembles, previews
// and packages the page, and can ask Gemini to draft the narrative.
package folio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/eringen/folio/gemini"
	"github.com/eringen/folio/preview"
	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

// App is the authoring server. It wires together the workspace registry,
// the generation backend, middleware and handlers.
type App struct {
	Config     Config
	Echo       *echo.Echo
	Workspaces *Workspaces

	logger       *slog.Logger
	limiter      *RequestLimiter
	inflight     *inflight
	newGenerator func(apiKey string) gemini.Generator
	customRoutes []func(*App)
	stopSweep    func()
}

// New creates an App with middleware and routes installed. Nothing listens
// until Start.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		logger:   slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		inflight: newInflight(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.newGenerator == nil {
		client := gemini.NewClient(gemini.ClientOptions{
			BaseURL: cfg.GeminiBaseURL,
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Limiter: rate.NewLimiter(rate.Every(cfg.GeminiPace), 1),
		})
		a.newGenerator = func(key string) gemini.Generator {
			if key == "" {
				return client
			}
			return client.WithAPIKey(key)
		}
	}

	a.limiter = NewRequestLimiter(cfg.GenerationsPerMinute, time.Minute)
	a.Workspaces = NewWorkspaces(cfg.WorkspaceTTL, a.newWorkspace)

	a.Echo.HideBanner = true
	a.Echo.JSONSerializer = sonicSerializer{}
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start begins evicting idle workspaces and serves until the server stops.
func (a *App) Start() error {
	a.stopSweep = a.Workspaces.StartSweeper(a.Config.WorkspaceTTL / 4)
	a.logger.Info("folio listening", "addr", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("folio: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close tears down every workspace, releasing uploads and timers.
func (a *App) Close() error {
	if a.stopSweep != nil {
		a.stopSweep()
	}
	a.limiter.Stop()
	a.Workspaces.Close()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleEditor, a.workspaceMiddleware)
	e.GET("/editor.js", a.handleEditorScript)

	api := e.Group("/api", a.workspaceMiddleware)
	api.GET("/state", a.handleState)
	api.GET("/project", a.handleProjectExport)
	api.PUT("/project", a.handleProjectImport)
	api.GET("/project/download", a.handleProjectDownload)
	api.PATCH("/project/fields", a.handleSetField)
	api.PUT("/settings", a.handleSettings)

	api.POST("/blocks", a.handleAppendBlock)
	api.PATCH("/blocks/:index", a.handleUpdateBlock)
	api.DELETE("/blocks/:index", a.handleRemoveBlock)
	api.POST("/blocks/:index/move", a.handleMoveBlock)
	api.POST("/blocks/:index/upload", a.handleUpload, a.uploadLimit)

	api.GET("/validate", a.handleValidate)
	api.POST("/html", a.handleGenerateHTML)
	api.GET("/html", a.handleGetHTML)
	api.GET("/export", a.handleExport)

	api.POST("/generate/project", a.handleGenerateProject)
	api.POST("/generate/code/:index", a.handleGenerateCode)

	api.POST("/preview/show", a.handlePreviewShow)
	api.POST("/preview/hide", a.handlePreviewHide)
	api.GET("/preview", a.handlePreviewStatus)

	api.GET("/notices", a.handleNotices)
	api.DELETE("/notices/:id", a.handleDismissNotice)

	// Preview documents run in a sandboxed frame with an opaque origin, so
	// they are addressed by workspace id rather than by session cookie.
	pv := e.Group("/preview/:ws")
	pv.GET("/", a.handlePreviewDocument)
	pv.GET("/assets/*", a.handlePreviewAsset)
	pv.GET("/media/:key", a.handlePreviewMedia)
}

// newWorkspace builds a workspace whose preview driver renders its own
// current state.
func (a *App) newWorkspace(id string) *Workspace {
	ws := &Workspace{
		ID:      id,
		editor:  project.NewEditor(project.NewState()),
		notices: NewNotices(a.Config.NoticeTTL),
	}
	log := a.logger.With("workspace", id)
	ws.preview = preview.NewDriver(a.Config.PreviewDelay, ws.renderPreview,
		preview.WithOnSettle(func(st preview.Status) {
			if st.Err != nil {
				log.Debug("preview kept previous render", "err", st.Err)
				return
			}
			log.Debug("preview rendered", "renders", st.Renders, "bytes", len(st.Content))
		}),
	)
	return ws
}

func (ws *Workspace) renderPreview() (string, error) {
	ws.mu.Lock()
	s := ws.editor.Snapshot()
	ws.mu.Unlock()

	if errs := project.Validate(s); errs != nil {
		return "", errs
	}
	art, err := render.Page(s, render.Options{})
	if err != nil {
		return "", err
	}
	return art.HTML, nil
}
