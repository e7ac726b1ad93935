package timeclock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
)

// StatusFetch loads the current status. In production this is the
// cache-backed CurrentStatus of the timeclock service, so the poll loop
// keeps the status family warm for every reader.
type StatusFetch func(ctx context.Context) (timelog.StatusResponse, error)

// StatusPoller polls the current attendance status on a fixed interval,
// no backoff. On a transient error the last known value is retained and
// the next tick retries; the read path has no user-facing error
// surface.
type StatusPoller struct {
	fetch    StatusFetch
	interval time.Duration

	mu      sync.RWMutex
	latest  timelog.StatusResponse
	known   bool
	loading bool
}

func NewStatusPoller(fetch StatusFetch, interval time.Duration) *StatusPoller {
	return &StatusPoller{
		fetch:    fetch,
		interval: interval,
		loading:  true,
	}
}

// Start polls until the context is cancelled. The first poll fires
// immediately.
func (p *StatusPoller) Start(ctx context.Context) {
	go func() {
		p.poll(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

func (p *StatusPoller) poll(ctx context.Context) {
	resp, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		// Keep the last known value; the next tick retries.
		slog.Debug("status poll failed", "error", err)
		return
	}
	p.latest = resp
	p.known = true
}

// Latest returns the most recent successfully polled status.
func (p *StatusPoller) Latest() (timelog.StatusResponse, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.known
}

// Loading reports whether the first poll is still outstanding.
func (p *StatusPoller) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}
