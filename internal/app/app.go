package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"style-watcher/internal/clipboard"
	"style-watcher/internal/hotkey"
	"style-watcher/internal/input"
	"style-watcher/internal/ipc"
	"style-watcher/internal/models"
	"style-watcher/internal/payload"
	"style-watcher/internal/query"
	"style-watcher/internal/selection"
	"style-watcher/internal/storage"
	"style-watcher/internal/throttle"
	"style-watcher/internal/ui"
	"style-watcher/internal/wm"
	"style-watcher/pkg/config"
	"style-watcher/pkg/global"
	"style-watcher/pkg/logger"
	"style-watcher/pkg/notify"
)

const appID = "io.github.style-watcher"

// StyleWatcher owns the tray app: hotkey, result window, IPC socket and
// the capture pipeline behind them.
type StyleWatcher struct {
	fyneApp  fyne.App
	config   *config.Config
	log      *logger.Logger
	notifier *notify.NotifyService

	chord      hotkey.Chord
	socketPath string
	debug      bool

	pipeline   *Pipeline
	window     *ui.ResultWindow
	debugPanel *ui.DebugPanel
	history    *storage.DB // nil when the database could not be opened
	wm         *wm.Manager // nil outside Hyprland and X11
	binder     *hotkey.HyprlandBinder
	listener   *hotkey.Listener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStyleWatcher builds the app from the global config and logger.
func NewStyleWatcher(socketPath string, debug bool) (*StyleWatcher, error) {
	cfg, log, notifier := global.GetAll()
	if cfg == nil || log == nil {
		return nil, errors.New("globals are not initialized")
	}

	chord, err := hotkey.Parse(cfg.GetHotkey())
	if err != nil {
		log.Warn("Invalid hotkey, using default", "hotkey", cfg.GetHotkey(), "error", err)
		chord = hotkey.MustDefault()
	}

	client, err := query.NewClient(query.Options{
		URL:     cfg.GetAPIURL(),
		Method:  cfg.GetMethod(),
		JSONKey: cfg.GetJSONKey(),
		Timeout: cfg.GetTimeout(),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create query client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sw := &StyleWatcher{
		fyneApp:    fyneapp.NewWithID(appID),
		config:     cfg,
		log:        log,
		notifier:   notifier,
		chord:      chord,
		socketPath: socketPath,
		debug:      debug,
		ctx:        ctx,
		cancel:     cancel,
	}

	if db, err := storage.New(); err != nil {
		log.Error("History disabled, failed to open storage", err)
	} else {
		sw.history = db
	}

	session := wm.DetectSession()
	if runtime.GOOS == "linux" {
		if m, err := wm.NewManager(session, log); err != nil {
			log.Warn("No window manager integration", "session", string(session), "error", err)
		} else {
			sw.wm = m
		}
	}

	sw.window = ui.NewResultWindow(sw.fyneApp, cfg.GetWindow(), sw.historySource(), ui.Callbacks{
		OnQuery:   func(text string) { sw.pipeline.QueryText(sw.ctx, text) },
		OnRestore: func(entry models.HistoryEntry) { sw.pipeline.Restore(entry) },
		OnShown:   sw.keepOnTop,
	}, log)

	if debug {
		sw.debugPanel = ui.NewDebugPanel(sw.fyneApp, log)
		log.AddWriter(ui.NewDebugWriter(sw.debugPanel))
	}

	port := input.NewRobotPort()
	sources := selection.DefaultSources(selection.Options{
		Clipboard:   clipboard.NewSystem(),
		Port:        port,
		SettleDelay: cfg.GetSettleDelay(),
		Wayland:     session.IsWayland(),
		Log:         log,
	})

	chain := selection.NewChain(log, sources...)
	deps := PipelineDeps{
		Throttle:  throttle.New(cfg.GetDebounce()),
		Guard:     input.NewModifierGuard(port, log),
		Modifiers: chord.Modifiers(),
		Capturer:  chain,
		Budget:    selection.DefaultBudget,
		Querier:   client,
		Parser:    payload.NewParser(cfg.GetSizeVocabulary()),
		Renderer:  sw.window,
		TopN:      cfg.GetTopN(),
		Log:       log,
	}
	if sw.history != nil {
		deps.History = sw.history
	}
	if sw.wm != nil {
		deps.Windows = sw.wm
	}
	sw.pipeline = NewPipeline(deps)

	log.Info("StyleWatcher initialized",
		"hotkey", chord.String(),
		"session", string(session),
		"sources", chain.Sources(),
		"history", sw.history != nil)
	return sw, nil
}

func (sw *StyleWatcher) historySource() ui.HistorySource {
	if sw.history == nil {
		return nil
	}
	return sw.history
}

// Run blocks until the user quits from the tray.
func (sw *StyleWatcher) Run() error {
	defer sw.shutdown()

	sw.setupTray()

	if err := sw.startIPC(); err != nil {
		sw.log.Error("IPC server disabled", err, "socket", sw.socketPath)
		sw.notice("Another instance may be running; -capture will not reach this one", notify.Warning)
	}

	sw.registerHotkey()
	sw.restoreHistory()

	sw.log.Info("Starting application")
	sw.fyneApp.Run()
	return nil
}

func (sw *StyleWatcher) setupTray() {
	desk, ok := sw.fyneApp.(desktop.App)
	if !ok {
		sw.log.Warn("System tray not supported, showing window")
		sw.window.Show()
		return
	}

	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Show / Hide", sw.window.Toggle),
		fyne.NewMenuItem("Manual query", sw.window.FocusInput),
		fyne.NewMenuItem("Open config", sw.openConfig),
	}
	if sw.debugPanel != nil {
		items = append(items, fyne.NewMenuItem("Debug logs", sw.debugPanel.Show))
	}
	items = append(items, fyne.NewMenuItemSeparator())

	quit := fyne.NewMenuItem("Quit", sw.fyneApp.Quit)
	quit.IsQuit = true
	items = append(items, quit)

	desk.SetSystemTrayMenu(fyne.NewMenu(ui.WindowTitle, items...))
}

func (sw *StyleWatcher) openConfig() {
	path := sw.config.GetPath()
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			sw.log.Error("Failed to locate config", err)
			return
		}
		path = filepath.Join(dir, "config.json")
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if err := sw.fyneApp.OpenURL(u); err != nil {
		sw.log.Error("Failed to open config", err, "path", path)
	}
}

func (sw *StyleWatcher) startIPC() error {
	server := ipc.NewServer(sw.socketPath, sw, sw.log)
	ln, err := server.Listen()
	if err != nil {
		return err
	}

	sw.wg.Add(1)
	go func() {
		defer sw.wg.Done()
		if err := server.Serve(sw.ctx, ln); err != nil {
			sw.log.Error("IPC server stopped", err)
		}
	}()
	return nil
}

// registerHotkey uses the first mechanism the platform offers: a native
// registration, a Hyprland bind, or a note asking the user to bind the
// capture command themselves.
func (sw *StyleWatcher) registerHotkey() {
	l, err := hotkey.Listen(sw.chord, sw.triggerCapture, sw.log)
	if err == nil {
		sw.listener = l
		sw.notice(fmt.Sprintf("Select text and press %s", sw.chord), notify.Info)
		return
	}
	if !errors.Is(err, hotkey.ErrUnsupported) {
		sw.log.Error("Failed to register hotkey", err, "hotkey", sw.chord.String())
		sw.notice(err.Error(), notify.Error)
		return
	}

	command := captureCommand()
	if sw.wm != nil && sw.wm.Session() == wm.SessionHyprland {
		binder, err := hotkey.NewHyprlandBinder(sw.log)
		if err == nil {
			ctx, cancel := context.WithTimeout(sw.ctx, 5*time.Second)
			err = binder.Bind(ctx, sw.chord, command)
			cancel()
		}
		if err == nil {
			sw.binder = binder
			sw.notice(fmt.Sprintf("Select text and press %s", sw.chord), notify.Info)
			return
		}
		sw.log.Error("Failed to bind hotkey in Hyprland", err, "hotkey", sw.chord.String())
	}

	sw.log.Info("Bind the capture command in your window manager", "command", command)
	sw.notice(fmt.Sprintf("Bind %s to: %s", sw.chord, command), notify.Warning)
}

func captureCommand() string {
	exe, err := os.Executable()
	if err != nil {
		exe = "style-watcher"
	}
	return hotkey.ShellQuote(exe) + " -capture"
}

func (sw *StyleWatcher) restoreHistory() {
	if sw.history == nil {
		return
	}
	if retention := sw.config.GetHistoryRetention(); retention > 0 {
		n, err := sw.history.Cleanup(retention)
		if err != nil {
			sw.log.Error("Failed to clean up history", err)
		} else if n > 0 {
			sw.log.Debug("Removed old history entries", "count", n)
		}
	}

	last, ok, err := sw.history.Last()
	if err != nil {
		sw.log.Error("Failed to load last history entry", err)
		return
	}
	if ok {
		sw.pipeline.Restore(last)
	}
}

func (sw *StyleWatcher) keepOnTop() {
	if !sw.config.GetWindow().AlwaysOnTop || sw.wm == nil {
		return
	}
	if err := sw.wm.KeepOnTop(ui.WindowTitle); err != nil {
		sw.log.Warn("Failed to keep window on top", "error", err)
	}
}

// triggerCapture is the hotkey callback. It must not block the caller.
func (sw *StyleWatcher) triggerCapture() {
	sw.wg.Add(1)
	go func() {
		defer sw.wg.Done()
		sw.pipeline.OnCaptureTriggered(sw.ctx)
	}()
}

// Capture implements ipc.Handler.
func (sw *StyleWatcher) Capture() error {
	sw.triggerCapture()
	return nil
}

// Show implements ipc.Handler.
func (sw *StyleWatcher) Show() error {
	sw.window.Show()
	return nil
}

// Query implements ipc.Handler.
func (sw *StyleWatcher) Query(text string) error {
	sw.wg.Add(1)
	go func() {
		defer sw.wg.Done()
		sw.window.Show()
		sw.pipeline.QueryText(sw.ctx, text)
	}()
	return nil
}

func (sw *StyleWatcher) notice(msg string, nType notify.NotificationType) {
	if sw.notifier == nil {
		return
	}
	if err := sw.notifier.Show(msg, nType); err != nil {
		sw.log.Warn("Notification failed", "error", err)
	}
}

func (sw *StyleWatcher) shutdown() {
	sw.log.Info("Shutting down")
	sw.cancel()

	if sw.listener != nil {
		sw.listener.Close()
	}
	if sw.binder != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := sw.binder.UnbindAll(ctx); err != nil {
			sw.log.Warn("Failed to remove Hyprland binds", "error", err)
		}
		cancel()
	}

	sw.wg.Wait()

	if sw.history != nil {
		if err := sw.history.Close(); err != nil {
			sw.log.Warn("Failed to close history", "error", err)
		}
	}
}
