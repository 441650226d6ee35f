package relay

import (
	"context"

	"go.uber.org/zap"

	"tradingvault/internal/repository"
)

// Notifier delivers one formatted message to the channel.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// Relay forwards newly created signals to the notification channel. The
// dedup cursor is owned by this struct and written only from PollOnce, which
// runs on a single schedule; it is not shared with request handlers. The
// cursor does not survive a restart, so the newest signal is re-sent once
// after boot.
type Relay struct {
	Signals  repository.SignalRepository
	Notifier Notifier
	Logger   *zap.Logger

	lastSentID string
}

// StartupNotice announces that the relay is live again.
const StartupNotice = "🔄 Bot restarted, now monitoring signals..."

// PollOnce fetches the newest signal and sends it unless it was the last one
// sent. Only the single latest row is considered: if several signals land
// within one poll interval, the earlier ones are skipped. Errors are logged
// and swallowed so the schedule keeps running.
func (r *Relay) PollOnce(ctx context.Context) {
	if r == nil || r.Signals == nil || r.Notifier == nil {
		return
	}

	sig, err := r.Signals.LatestSignal(ctx)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("latest signal fetch failed", zap.Error(err))
		}
		return
	}
	if sig == nil || sig.ID == r.lastSentID {
		return
	}

	if err := r.Notifier.SendMessage(ctx, FormatSignal(*sig)); err != nil {
		if r.Logger != nil {
			r.Logger.Warn("signal send failed", zap.String("signal_id", sig.ID), zap.Error(err))
		}
		return
	}

	// Advance only after a successful send so a failed send is retried on
	// the next tick.
	r.lastSentID = sig.ID
	if r.Logger != nil {
		r.Logger.Info("signal relayed",
			zap.String("signal_id", sig.ID),
			zap.String("symbol", sig.Symbol),
			zap.String("direction", sig.Direction),
		)
	}
}

// LastSentID reports the current cursor, for logging and tests.
func (r *Relay) LastSentID() string {
	if r == nil {
		return ""
	}
	return r.lastSentID
}
