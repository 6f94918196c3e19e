package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"style-watcher/internal/app"
	"style-watcher/internal/ipc"
	"style-watcher/pkg/config"
	"style-watcher/pkg/global"
	"style-watcher/pkg/logger"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	socketPath := flag.String("socket", ipc.DefaultSocketPath, "path of the control socket")
	capture := flag.Bool("capture", false, "ask the running instance to capture the current selection")
	show := flag.Bool("show", false, "ask the running instance to show its window")
	queryText := flag.String("query", "", "ask the running instance to query this text")
	flag.Parse()

	// Setup logging level
	logLevel := zerolog.InfoLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	// Initialize logger first for early logging
	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	// Client mode: forward to the running instance and exit
	if req, ok := clientRequest(*capture, *show, *queryText); ok {
		if _, err := ipc.SendCommand(*socketPath, req, log); err != nil {
			log.Error("Command failed", err, "command", req.Command)
			fmt.Fprintf(os.Stderr, "style-watcher: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log.Info("Starting StyleWatcher",
		"version", "1.0.0",
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", *debug)

	log.Debug("Loading configuration", "provided_path", *configPath)

	cfg, err := config.FindConfig(*configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err,
			"provided_path", *configPath)
		os.Exit(1)
	}
	log.Info("Configuration loaded successfully",
		"path", cfg.GetPath(),
		"api_url", cfg.GetAPIURL(),
		"hotkey", cfg.GetHotkey())

	global.InitGlobals(cfg, log)

	sw, err := app.NewStyleWatcher(*socketPath, *debug)
	if err != nil {
		log.Fatal("Failed to create StyleWatcher", err)
	}

	if err := sw.Run(); err != nil {
		log.Fatal("Application error", err)
	}
}

func clientRequest(capture, show bool, text string) (ipc.Request, bool) {
	switch {
	case capture:
		return ipc.Request{Command: ipc.CommandCapture}, true
	case text != "":
		return ipc.Request{Command: ipc.CommandQuery, Text: text}, true
	case show:
		return ipc.Request{Command: ipc.CommandShow}, true
	}
	return ipc.Request{}, false
}
