package app

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/dshills/reportassist/internal/assist"
	"github.com/dshills/reportassist/internal/async"
	"github.com/dshills/reportassist/internal/completion"
	"github.com/dshills/reportassist/internal/config"
	"github.com/dshills/reportassist/internal/engine/document"
	"github.com/dshills/reportassist/internal/library"
	"github.com/dshills/reportassist/internal/logging"
	"github.com/dshills/reportassist/internal/suggest"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the per-user default.
	ConfigPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// Debug forces debug logging.
	Debug bool

	// File is the report to edit. It need not exist yet.
	File string

	// LogOutput receives logs when no log file is configured. Nil discards
	// them, which terminal sessions need.
	LogOutput io.Writer
}

// Application owns every long-lived component of one session.
type Application struct {
	opts    Options
	cfg     *config.Config
	logger  *logging.Logger
	logFile *os.File

	store   *library.Store
	watcher *library.Watcher
	lua     *completion.LuaSource
	source  completion.Source
	client  suggest.Client

	loop   *async.Loop
	doc    *document.Document
	engine *assist.Engine
}

// New creates an application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		loop: async.NewLoop(64),
	}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logging
	if err := app.initLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	// 3. Completion library and sources
	if err := app.initLibrary(); err != nil {
		return &InitError{Component: "library", Err: err}
	}

	// 4. Suggestion client
	if err := app.initClient(); err != nil {
		return &InitError{Component: "suggest", Err: err}
	}

	// 5. Report document and engine
	text := ""
	if app.opts.File != "" {
		data, err := os.ReadFile(app.opts.File)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return &FileError{Op: "open", Path: app.opts.File, Err: err}
		default:
			text = string(data)
		}
	}
	app.doc = document.New(text)
	app.engine = assist.New(app.doc, app.engineConfig())

	app.logger.Info("ready: library %d entries, suggestions %s", app.store.Library().Size(), app.suggestState())
	return nil
}

func (app *Application) initLogging() error {
	level := logging.ParseLevel(app.cfg.Logging.Level)
	if app.opts.LogLevel != "" {
		level = logging.ParseLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		level = logging.LevelDebug
	}

	out := app.opts.LogOutput
	if app.cfg.Logging.File != "" {
		f, err := logging.OpenFile(app.cfg.Logging.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}
	if out == nil {
		app.logger = logging.Null()
		return nil
	}
	app.logger = logging.New(logging.Config{Level: level, Output: out, Prefix: "reportassist"})
	return nil
}

func (app *Application) initLibrary() error {
	lib := library.Empty()
	if p := app.cfg.Library.Path; p != "" {
		loaded, err := library.Load(p)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			app.logger.Warn("library %s: %v", p, err)
		}
		lib = loaded
	}
	app.store = library.NewStore(lib)

	if p := app.cfg.Library.Path; p != "" && app.cfg.Library.Watch {
		w, err := library.NewWatcher(p, app.store, library.WithLogger(app.logger))
		if err != nil {
			app.logger.Warn("not watching library %s: %v", p, err)
		} else {
			app.watcher = w
		}
	}

	sources := completion.Composite{completion.NewLibrarySource(app.store)}
	if p := app.cfg.Library.LuaScript; p != "" {
		src, err := completion.NewLuaSourceFile(p, completion.WithLuaLogger(app.logger))
		if err != nil {
			return err
		}
		app.lua = src
		sources = append(sources, src)
	}
	app.source = sources
	return nil
}

func (app *Application) initClient() error {
	s := app.cfg.Suggest
	if !s.Enabled {
		return nil
	}
	llm := suggest.LLMConfig{
		BaseURL:       s.LLM.BaseURL,
		Model:         s.LLM.Model,
		APIKey:        s.LLM.APIKey,
		RatePerSecond: s.RatePerSecond,
		Burst:         s.Burst,
	}
	switch s.Backend {
	case config.BackendLLM:
		app.client = suggest.NewLLMClient(llm)
	case config.BackendAnthropic:
		app.client = suggest.NewAnthropicClient(llm)
	default:
		c, err := suggest.NewHTTPClient(s.Endpoint,
			suggest.WithTimeout(app.cfg.Timeout()),
			suggest.WithRateLimit(s.RatePerSecond, s.Burst),
		)
		if err != nil {
			return err
		}
		app.client = c
	}
	return nil
}

func (app *Application) engineConfig() assist.Config {
	st := app.cfg.Study
	return assist.Config{
		Source:   app.source,
		MinChars: app.cfg.Editor.MinCharsForSuggest,
		Suggest: suggest.FetcherConfig{
			Client: app.client,
			Study: suggest.StudyContext{
				PatientSex:  st.PatientSex,
				PatientAge:  st.PatientAge,
				StudyHeader: st.StudyHeader,
				StudyInfo:   st.StudyInfo,
			},
			Enabled:   app.client != nil,
			IdleDelay: app.cfg.IdleDelay(),
			Timeout:   app.cfg.Timeout(),
			Scheduler: async.RealScheduler{},
			Poster:    app.loop,
			Logger:    app.logger,
		},
		Logger: app.logger,
	}
}

func (app *Application) suggestState() string {
	if app.client == nil {
		return "off"
	}
	return app.cfg.Suggest.Backend
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Engine returns the engine editing the report.
func (app *Application) Engine() *assist.Engine {
	return app.engine
}

// Loop returns the event loop that fetch results and timers are posted to.
func (app *Application) Loop() *async.Loop {
	return app.loop
}

// Library returns the completion library store.
func (app *Application) Library() *library.Store {
	return app.store
}

// Save writes the report to its file.
func (app *Application) Save() error {
	if app.opts.File == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(app.opts.File, []byte(app.doc.Text()), 0o644); err != nil {
		return &FileError{Op: "save", Path: app.opts.File, Err: err}
	}
	app.logger.Info("saved %s", app.opts.File)
	return nil
}

// Close releases every component. It is safe to call more than once.
func (app *Application) Close() {
	if app.engine != nil {
		app.engine.Close()
		app.engine = nil
	}
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	if app.lua != nil {
		app.lua.Close()
		app.lua = nil
	}
	app.loop.Close()
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}
