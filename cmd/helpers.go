package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/ramanasai/daytodo/internal/directory"
	"github.com/ramanasai/daytodo/internal/logging"
	"github.com/ramanasai/daytodo/internal/output"
	"github.com/ramanasai/daytodo/internal/prefs"
	"github.com/ramanasai/daytodo/internal/version"
)

// session bundles what a command needs to talk to the server.
type session struct {
	svc    *app.Service
	logger *log.Logger
	store  *prefs.Store
}

func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close prefs", "err", err)
		}
	}
}

// cliLogger logs to stderr. Request tracing needs --verbose.
func cliLogger() (*log.Logger, error) {
	opts, err := logging.FromConfig(cfg.Log)
	if err != nil {
		return nil, err
	}
	if verbose {
		opts.Level = log.DebugLevel
	} else if opts.Level < log.WarnLevel {
		opts.Level = log.WarnLevel
	}
	return logging.New(os.Stderr, opts), nil
}

func openSession(ctx context.Context, logger *log.Logger) (*session, error) {
	client, err := api.New(cfg.Server.BaseURL,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithLogger(logger),
		api.WithUserAgent(version.UserAgent()),
	)
	if err != nil {
		return nil, err
	}

	strategy, err := directory.ParseStrategy(cfg.Directory.CopyStrategy)
	if err != nil {
		return nil, err
	}

	s := &session{logger: logger}
	var pins *prefs.PinnedSet
	store, err := openPrefs()
	if err != nil {
		logger.Warn("pinned dates will not be saved", "err", err)
		pins = prefs.LoadPinned(ctx, nil, logger)
	} else {
		s.store = store
		pins = prefs.LoadPinned(ctx, store, logger)
	}

	s.svc = app.NewService(client, pins, app.Options{
		Formatter:         cfg.Formatter(),
		FallbackDays:      cfg.Directory.FallbackDays,
		CopyStrategy:      strategy,
		MaxProbe:          cfg.Directory.MaxProbe,
		SearchConcurrency: cfg.Search.Concurrency,
		Logger:            logger,
	})
	return s, nil
}

func openPrefs() (*prefs.Store, error) {
	path := cfg.Prefs.Path
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return prefs.Open(path)
}

// withSession opens a CLI session, runs fn and closes it.
func withSession(ctx context.Context, fn func(ctx context.Context, s *session) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := cliLogger()
	if err != nil {
		return err
	}
	s, err := openSession(ctx, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func renderer() (*output.Renderer, error) {
	rc := output.DefaultConfig()
	f, err := output.ParseFormat(outFormat)
	if err != nil {
		return nil, err
	}
	rc.Format = f
	if noColor || os.Getenv("NO_COLOR") != "" {
		rc.Color = false
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return output.NewRenderer(rc), nil
}

// resolveDate turns a --date value or argument into a date key.
func resolveDate(input string) string {
	return dateutil.ResolveKey(input, cfg.Location(), time.Now())
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", s)
	}
	return id, nil
}
