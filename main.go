package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/roi-editor-go/app"
	"github.com/soocke/roi-editor-go/config"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "log runtime statistics (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [image or record set files...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Base config from file, falling back to defaults
	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	c := app.BuildContainer(cfg, logger, *cfgPath)
	application := app.NewApp("ROI Editor", c)
	application.Start(flag.Args())
}
