package cmd

import (
	"context"
	"os"

	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/logging"
	"github.com/ramanasai/daytodo/internal/notify"
	"github.com/ramanasai/daytodo/internal/schedule"
	"github.com/ramanasai/daytodo/internal/ui"
	"github.com/spf13/cobra"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := logging.FromConfig(cfg.Log)
	if err != nil {
		return err
	}
	logger, f, err := logging.OpenFile(cfg.Log.File, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := openSession(ctx, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startReminder(ctx, s)

	logger.Info("starting tui", "server", s.svc.API.BaseURL())
	return ui.Run(s.svc, ui.Options{
		Logger:   logger,
		Theme:    cfg.Theme,
		Notifier: notify.Notifier{Enabled: cfg.Notifications.Desktop},
	})
}

// startReminder posts the daily reminder while the TUI runs.
func startReminder(ctx context.Context, s *session) {
	if !cfg.Reminder.Enabled || os.Getenv("DAYTODO_NO_REMINDER") == "1" {
		return
	}
	go schedule.RunConfigured(ctx, cfg, func() {
		pending, err := pendingToday(ctx, s.svc)
		if err != nil {
			s.logger.Warn("reminder skipped", "err", err)
			return
		}
		title, msg := notify.FormatDailyPrompt(pending)
		if err := notify.Info(title, msg); err != nil {
			s.logger.Warn("reminder notification failed", "err", err)
		}
	})
}

func pendingToday(ctx context.Context, svc *app.Service) (int, error) {
	todos, err := svc.API.ListTodos(ctx, svc.Today())
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n, nil
}
