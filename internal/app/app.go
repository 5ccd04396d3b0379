package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/five82/strip/internal/comic"
	"github.com/five82/strip/internal/config"
	"github.com/five82/strip/internal/logger"
	"github.com/five82/strip/internal/nav"
	"github.com/five82/strip/internal/prefs"
	"github.com/five82/strip/internal/preview"
	"github.com/five82/strip/internal/state"
	"github.com/five82/strip/internal/ui"
	"github.com/five82/strip/internal/view"
)

// Options configure the strip application.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/strip/prefs.toml
	LogLevel   string    // overrides log_level from config when set
	Console    io.Writer // headless commands log here instead of the log file
	Version    string
}

// Env holds the pieces shared by the TUI and the headless commands.
type Env struct {
	Config config.Config
	Log    *logger.Logger
	Source comic.Source

	userAgent string
}

// Setup loads configuration and builds the logger and comic client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logger.Options{
		Path:       cfg.LogPath,
		Level:      cfg.LogLevel,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}
	if opts.Console != nil {
		// Headless commands keep stdout for comics and stderr for problems.
		logOpts.Path = ""
		logOpts.Console = opts.Console
		logOpts.Level = "warn"
	}
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		logOpts.Level = lvl
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	userAgent := "strip/" + version

	client, err := comic.NewClient(comic.Options{
		BaseURL:   cfg.BaseURL,
		Style:     comic.URLStyle(cfg.URLStyle),
		Timeout:   cfg.RequestTimeout,
		UserAgent: userAgent,
	})
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("init comic client: %w", err)
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("url_style", cfg.URLStyle).
		Str("random_mode", cfg.RandomMode).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("configuration loaded")

	return &Env{Config: cfg, Log: log, Source: client, userAgent: userAgent}, nil
}

// Navigator builds a navigator over the env's source that reports to p.
func (e *Env) Navigator(p view.Presenter) (*nav.Navigator, error) {
	return nav.New(nav.Options{
		Source:     e.Source,
		Presenter:  p,
		Store:      &state.Store{},
		Logger:     &e.Log.Logger,
		RandomMode: nav.RandomMode(e.Config.RandomMode),
	})
}

// Close releases the log file.
func (e *Env) Close() error {
	return e.Log.Close()
}

// Run boots the strip TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Console = nil
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Log.Warn().Err(err).Msg("load prefs failed, using defaults")
	}

	presenter := ui.NewPresenter()
	navigator, err := env.Navigator(presenter)
	if err != nil {
		return fmt.Errorf("init navigator: %w", err)
	}

	// Start background refresh of the latest comic when configured
	StartPoller(ctx, navigator, env.Config.RefreshEvery, env.Log.Logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Navigator: navigator,
		Presenter: presenter,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogPath:   env.Log.Path(),
		Session:   env.Log.Session,
		Logger:    &env.Log.Logger,
	}
	if env.Config.ImagePreview {
		uiOpts.Preview = preview.NewLoader(nil, env.userAgent)
	}

	env.Log.Info().Str("base_url", env.Config.BaseURL).Msg("starting tui")
	err = ui.Run(uiOpts)
	env.Log.Info().Err(err).Msg("tui stopped")
	return err
}

// TargetKind selects the comic a headless command prints.
type TargetKind int

const (
	TargetLatest TargetKind = iota
	TargetID
	TargetRandom
)

// Target names the comic to print.
type Target struct {
	Kind TargetKind
	ID   int // used with TargetID
}

// Show prints one comic to w as text. Failures are printed as well and
// returned.
func Show(ctx context.Context, opts Options, w io.Writer, target Target) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	text := view.NewTextPresenter(w)
	var live atomic.Bool
	live.Store(target.Kind == TargetLatest)
	navigator, err := env.Navigator(view.PresenterFunc(func(s view.State) {
		if live.Load() {
			text.Present(s)
		}
	}))
	if err != nil {
		return fmt.Errorf("init navigator: %w", err)
	}

	if err := navigator.Init(ctx); err != nil {
		if !live.Load() {
			text.Present(navigator.View())
		}
		return err
	}

	live.Store(true)
	switch target.Kind {
	case TargetID:
		return navigator.Goto(ctx, target.ID)
	case TargetRandom:
		return navigator.Random(ctx)
	default:
		return nil
	}
}
