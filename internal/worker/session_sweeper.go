package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/repository"
)

// SessionSweeper periodically deletes expired session rows. The cached
// copies in Redis expire on their own TTL and never need sweeping.
type SessionSweeper struct {
	sessions *repository.SessionRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessions *repository.SessionRepository, interval time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		log:      log.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *SessionSweeper) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// A final sweep on the way out keeps the table tidy across restarts.
			w.sweep(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SessionSweeper) sweep(ctx context.Context) {
	n, err := w.sessions.DeleteExpired(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int64("deleted", n).Msg("Expired sessions removed")
	}
}
