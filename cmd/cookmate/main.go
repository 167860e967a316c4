// CookMate is a terminal client for the recipe discovery backend.
//
// Usage:
//
//	cookmate [-config cookmate.yaml] [-backend URL] [-verbose] [-quiet] [-log-file path] [-store path]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/auth"
	"github.com/hammamikhairi/cookmate/internal/carousel"
	"github.com/hammamikhairi/cookmate/internal/config"
	"github.com/hammamikhairi/cookmate/internal/conversation"
	"github.com/hammamikhairi/cookmate/internal/display"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/engine"
	"github.com/hammamikhairi/cookmate/internal/favorites"
	"github.com/hammamikhairi/cookmate/internal/ingredients"
	"github.com/hammamikhairi/cookmate/internal/logger"
	"github.com/hammamikhairi/cookmate/internal/notice"
	"github.com/hammamikhairi/cookmate/internal/recipe"
	"github.com/hammamikhairi/cookmate/internal/recommend"
	"github.com/hammamikhairi/cookmate/internal/storage"
	"github.com/hammamikhairi/cookmate/internal/substitute"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	configPath := flag.String("config", "", "config file (default: ./cookmate.yaml when present)")
	backend := flag.String("backend", "", "backend base URL, overrides backend_url")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to, overrides log_file")
	storePath := flag.String("store", "", "SQLite file for the saved session, overrides store_path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.BackendURL = *backend
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Configure logger.
	logLevel := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// The TUI owns stdout. Console logs only go to stderr when nothing
	// else would receive them and the user asked for them.
	var console io.Writer = io.Discard
	var logOpts []logger.Option
	switch {
	case cfg.LogFile == "stderr":
		console = os.Stderr
	case cfg.LogFile != "":
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile, 10, 3))
	case *verbose:
		console = os.Stderr
	}
	log := logger.New(logLevel, console, logOpts...)
	defer log.Close()

	// Route the standard log package through the same sinks.
	slog.SetDefault(log.Slog())

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	var store domain.KeyValueStore = storage.NewMemoryStore(log)
	if cfg.StorePath != "" {
		sq, err := storage.OpenSQLite(cfg.StorePath, log)
		if err != nil {
			log.Error("opening store %s, keeping the session in memory: %v", cfg.StorePath, err)
		} else {
			defer sq.Close()
			store = sq
		}
	}

	var session *auth.Session
	client, err := api.NewClient(cfg.BackendURL, log,
		api.WithHTTPTimeout(cfg.RequestTimeout),
		api.WithRetries(cfg.RetryAttempts, 200*time.Millisecond),
		api.WithRateLimit(cfg.RequestsPerSecond, 5),
		api.WithTokenSource(func() string {
			if session == nil {
				return ""
			}
			return session.Token()
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := &cliApp{
		client:    client,
		board:     notice.NewBoard(cfg.NoticeTTL),
		parser:    conversation.NewKeywordParser(log),
		catalog:   recipe.NewCatalog(client, log),
		typeahead: recipe.NewTypeahead(),
		selection: ingredients.NewSelection(),
		recommend: recommend.New(client, log, recommend.WithTopN(cfg.TopN)),
		finder:    substitute.NewFinder(client, log),
		log:       log,
	}
	app.ui = display.NewUI(app.status)
	app.notifier = conversation.NewCLINotifier(log, app.ui.Printf, conversation.WithBoard(app.board))

	session = auth.NewSession(client, store, log,
		auth.WithChangeHook(func(user domain.User, loggedIn bool) {
			app.sessionChanged(ctx, loggedIn)
		}),
	)
	app.session = session

	app.favs = favorites.NewSynced(favorites.NewStore(), client, session, log,
		favorites.WithFailureHook(func(msg string) {
			app.notifier.NotifyUrgent(ctx, msg)
		}),
	)

	app.engine = engine.New(auth.NewGate(), session, log,
		engine.WithLoginPrompt(app.promptLogin),
		engine.WithTransitionHook(app.transitioned),
	)

	app.hero = carousel.New(log,
		carousel.WithInterval(cfg.CarouselInterval),
		carousel.WithTransition(cfg.CarouselTransition),
	)
	app.hero.Start(ctx)
	defer app.hero.Stop()

	fmt.Println(display.RenderBanner("Transform your pantry into delicious possibilities"))
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		app.ui.WaitReady()
		app.startup(ctx)
		app.run(ctx)
		app.ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := app.ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

// startup restores the saved session and loads the catalog concurrently.
// Neither failure is fatal.
func (a *cliApp) startup(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		_, err := a.session.Restore(ctx)
		return err
	})
	g.Go(func() error {
		n, err := a.catalog.Refresh(ctx)
		if err != nil {
			return err
		}
		a.rebuildTypeahead()
		a.log.Info("loaded %d recipes from %s", n, a.client.BaseURL())
		return nil
	})
	if err := g.Wait(); err != nil {
		a.log.Warn("startup: %v", err)
		a.notifier.NotifyUrgent(ctx, api.UserMessage(err))
	}
}
