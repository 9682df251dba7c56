package schedule

import (
	"context"
	"time"

	"github.com/ramanasai/daytodo/internal/config"
)

// NextAt computes the next occurrence of reminder time that is on a configured workday and not a holiday.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 17, 0
	if t, err := time.ParseInLocation("15:04", cfg.Reminder.Time, loc); err == nil {
		hour = t.Hour()
		min = t.Minute()
	}
	workdays := map[string]bool{}
	for _, d := range cfg.Reminder.Workdays {
		workdays[config.NormalizeWeekday(d)] = true
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Reminder.Holidays {
		holidays[h] = true
	}
	ok := func(t time.Time) bool {
		if len(workdays) > 0 && !workdays[t.Weekday().String()[:3]] {
			return false
		}
		return !holidays[t.Format("2006-01-02")]
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// a year of holidays is the most that can stand in the way
	for i := 0; i < 400; i++ {
		if ok(cand) {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// NextMidnight returns the start of the day after now in loc.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)
}

// Run calls f at every time next returns until ctx is canceled.
func Run(ctx context.Context, next func(time.Time) time.Time, f func()) {
	t := time.NewTimer(time.Until(next(time.Now())))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
			t.Reset(time.Until(next(time.Now())))
		}
	}
}

// RunConfigured runs the reminder callback at the configured schedule until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	Run(ctx, func(now time.Time) time.Time { return NextAt(now, cfg) }, f)
}
