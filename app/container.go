package app

import (
	"log/slog"

	"github.com/soocke/roi-editor-go/config"
	"github.com/soocke/roi-editor-go/domain/capture"
	"github.com/soocke/roi-editor-go/domain/imagefile"
	"github.com/soocke/roi-editor-go/domain/records"
	"github.com/soocke/roi-editor-go/domain/workspace"
	"github.com/soocke/roi-editor-go/ui/model"
	"github.com/soocke/roi-editor-go/ui/presenter"
	"github.com/soocke/roi-editor-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Images     *imagefile.Loader
	Store      *records.Store
	Snapshots  *capture.Snapshotter
	Workspace  *workspace.Workspace
	Viewport   *model.Viewport
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	EditorPresenter    *presenter.EditorPresenter
	WorkspacePresenter *presenter.WorkspacePresenter
	StatusPresenter    *presenter.StatusPresenter
	Loop               *presenter.Loop
}

// WorkspaceOptions derives the ROI placement options from cfg.
func WorkspaceOptions(cfg *config.Config) workspace.Options {
	return workspace.Options{
		Inset:           cfg.NewROIInset,
		NewName:         cfg.NewROIName,
		HandleThreshold: cfg.HandleThreshold,
	}
}

// BuildContainer constructs all components. No widgets are created; the
// root view is built by the app once Tk styles are active.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Images = imagefile.NewLoader(cfg.ImageCacheSize, logger)
	c.Store = records.NewStore(logger)
	c.Snapshots = capture.NewSnapshotter(cfg.CaptureDir)
	c.Workspace = workspace.New(c.Images, c.Store, WorkspaceOptions(cfg), logger)
	c.Viewport = model.NewViewport(cfg.CanvasWidth, cfg.CanvasHeight, cfg.MaxZoom)

	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.EditorPresenter = presenter.NewEditorPresenter(c.Workspace, c.Viewport, c.UI, cfg.DragThresholdPx)
	c.WorkspacePresenter = presenter.NewWorkspacePresenter(c.Workspace, c.EditorPresenter, c.UI, c.Snapshots, logger)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Workspace, c.Viewport.Zoom, c.UI)
	c.Loop = presenter.NewLoop(c.EditorPresenter, c.WorkspacePresenter, c.StatusPresenter, nil)
	return c
}

// ApplyConfig pushes edited settings into the running components.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	if c == nil || cfg == nil {
		return
	}
	c.Workspace.SetOptions(WorkspaceOptions(cfg))
	c.EditorPresenter.SetDragThreshold(cfg.DragThresholdPx)
}
