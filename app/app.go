package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/roi-editor-go/config"
	"github.com/soocke/roi-editor-go/debug"
	"github.com/soocke/roi-editor-go/ui/model"
	"github.com/soocke/roi-editor-go/ui/theme"
	"github.com/soocke/roi-editor-go/ui/view"
)

const (
	tick          = 33 * time.Millisecond
	statsInterval = 5 * time.Second
)

type app struct {
	c       *AppContainer
	afterID string
	stop    context.CancelFunc
}

func NewApp(title string, c *AppContainer) *app {
	a := &app{c: c}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", c.Config.WindowWidth, c.Config.WindowHeight))
	return a
}

// Start builds the UI, opens paths and runs the Tk event loop until the
// window is closed.
func (a *app) Start(paths []string) {
	c := a.c
	theme.SetDark(c.Config.DarkMode)
	c.EditorPresenter.SetColors(theme.Overlay())

	ed, ws := c.EditorPresenter, c.WorkspacePresenter
	c.RootView.Build(view.Handlers{
		Pointer: view.PointerHandlers{
			Press:   ed.Press,
			Motion:  ed.Motion,
			Release: ed.Release,
			Wheel:   ed.Wheel,
		},
		Zoom:            ed.ZoomCenter,
		Fit:             ed.Fit,
		AddFiles:        func(p []string) { ws.AddPaths(p...) },
		Capture:         ws.Capture,
		Exit:            a.exitHandler,
		SelectImage:     ws.SelectImage,
		RemoveImage:     ws.RemoveImage,
		SelectRecordSet: ws.SelectRecordSet,
		NewRecordSet:    ws.NewRecordSet,
		RemoveRecordSet: ws.RemoveRecordSet,
		Save:            ws.Save,
		SelectROI:       ws.SelectROI,
		AddROI:          ws.AddROI,
		RemoveROI:       ws.RemoveROI,
		RenameROI:       ws.RenameROI,
		ApplyConfig:     a.applyConfig,
	})

	if len(paths) > 0 {
		ws.AddPaths(paths...)
		if len(c.Workspace.ImagePaths()) > 0 {
			ws.SelectImage(0)
		}
	}

	if c.Config.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		a.stop = cancel
		debug.StartStatsLogger(ctx, statsInterval, c.Logger, func() []slog.Attr {
			return []slog.Attr{slog.Int("cached_images", c.Images.Cached())}
		})
	}

	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) applyConfig(cfg *config.Config) {
	a.c.ApplyConfig(cfg)
	if cfg.DarkMode != theme.IsDark() {
		theme.SetDark(cfg.DarkMode)
		a.c.EditorPresenter.SetColors(theme.Overlay())
	}
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.stop != nil {
		a.stop()
	}
	c := a.c
	if c.Workspace.Dirty() {
		c.Logger.Warn("exiting with unsaved changes", "status", c.Workspace.Status())
	}
	a.saveGeometry()
	Destroy(App)
}

// saveGeometry remembers the window size for the next start.
func (a *app) saveGeometry() {
	cfg := a.c.Config
	r, ok := model.ParseGeometry(WmGeometry(App))
	if !ok || (r.Dx() == cfg.WindowWidth && r.Dy() == cfg.WindowHeight) {
		return
	}
	cfg.WindowWidth, cfg.WindowHeight = r.Dx(), r.Dy()
	if err := cfg.Save(a.c.ConfigPath); err != nil {
		a.c.Logger.Error("config save failed", "error", err)
	}
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
