package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/roi-editor-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the editing settings form and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ApplyChanges()                                          // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	onApply func(*config.Config)
	widgets map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApply runs after a
// successful apply so running components can pick up the new values.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(12))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("handleThreshold", "Handle Threshold", fmt.Sprintf("%.1f", c.HandleThreshold))
	makeRow("newROIInset", "New ROI Inset (0-0.5)", fmt.Sprintf("%.2f", c.NewROIInset))
	makeRow("newROIName", "New ROI Name", c.NewROIName)
	makeRow("dragThresholdPx", "Drag Threshold Px", fmt.Sprintf("%d", c.DragThresholdPx))
	makeRow("darkMode", "Dark Mode (true/false)", fmt.Sprintf("%t", c.DarkMode))
	applyBtn := Button(Txt("Apply Settings"), Command(func() { v.ApplyChanges() }))
	Grid(applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	field := func(id string) (string, bool) {
		w := v.widgets[id]
		if w == nil {
			return "", false
		}
		return strings.TrimSpace(v.text(w)), true
	}
	if s, ok := field("handleThreshold"); ok {
		if f, ok := parseFloatField(s); ok {
			cfg.HandleThreshold = f
		}
	}
	if s, ok := field("newROIInset"); ok {
		if f, ok := parseFloatField(s); ok {
			cfg.NewROIInset = f
		}
	}
	if s, ok := field("newROIName"); ok && s != "" {
		cfg.NewROIName = s
	}
	if s, ok := field("dragThresholdPx"); ok {
		if i, ok := parseIntField(s); ok {
			cfg.DragThresholdPx = i
		}
	}
	if s, ok := field("darkMode"); ok {
		if b, ok := parseBoolLoose(s); ok {
			cfg.DarkMode = b
		}
	}
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
