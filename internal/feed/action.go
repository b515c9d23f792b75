package feed

import (
	"context"
	"time"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/metrics"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/signals"
)

// RecordAction stores a user reaction in the background. It returns
// immediately; a failed write is logged and otherwise ignored. Call Flush
// before exiting to let pending writes finish.
func (f *Feed) RecordAction(userID string, kind content.Kind, action signals.Action, contentID, title string) {
	if f.popularity == nil {
		return
	}
	pref := signals.Preference{
		Kind:      kind,
		Action:    action,
		ContentID: contentID,
		Title:     title,
		At:        time.Now(),
	}

	f.pending.Add(1)
	go func() {
		defer f.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), f.actionTimeout)
		defer cancel()

		result := "ok"
		ev := otel.Event{Level: otel.LevelInfo, Kind: otel.KindAction, Comp: "feed", User: userID, Source: string(kind), Msg: string(action)}
		if err := f.popularity.RecordAction(ctx, userID, pref); err != nil {
			result = "error"
			ev.Level, ev.Err = otel.LevelWarn, err.Error()
			logging.Warn("record action failed", "user", userID, "kind", kind, "action", action, "error", err)
		}
		label := "unknown"
		if a, ok := signals.ParseAction(string(action)); ok {
			label = string(a)
		}
		metrics.ActionsTotal.WithLabelValues(label, result).Inc()
		f.events.Emit(ev)
	}()
}
