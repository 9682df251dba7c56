package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const appName = "daytodo"

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Error(message string) error {
	return beeep.Alert(appName, message, "")
}

// Notifier mirrors TUI notices to the desktop when enabled.
type Notifier struct {
	Enabled bool
}

// Send posts message as a desktop notification; errors go through Error.
func (n Notifier) Send(message string, isErr bool) error {
	if !n.Enabled || message == "" {
		return nil
	}
	if isErr {
		return Error(message)
	}
	return Info(appName, message)
}

func FormatDailyPrompt(pending int) (string, string) {
	title := "Daily todo reminder"
	switch pending {
	case 0:
		return title, "All of today's todos are done."
	case 1:
		return title, "You have 1 open todo today."
	}
	return title, fmt.Sprintf("You have %d open todos today.", pending)
}
