package weather

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Display strings for the error snapshots the HUD shows verbatim.
const (
	ErrTextUnavailable = "Weather N/A"
	ErrTextKeyMissing  = "API Key Missing"
)

// pollTick is how often the poller wakes to check the refresh interval.
const pollTick = 1 * time.Second

// Poller refreshes a cached weather Snapshot in the background, at most once
// per refresh interval. Failed fetches are recorded as error snapshots and are
// rate-limited by the same interval, so a persistently failing API is not
// hammered.
type Poller struct {
	client   *Client
	interval time.Duration
	log      *logrus.Entry

	mu          sync.Mutex
	snapshot    Snapshot
	lastAttempt time.Time

	stopCh  chan struct{}
	stopped sync.WaitGroup
}

// NewPoller creates a Poller around the given client. Snapshots start in the
// loading state.
func NewPoller(client *Client, interval time.Duration, log *logrus.Entry) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		log:      log,
		snapshot: Snapshot{State: StateLoading},
	}
}

// Start launches the background refresh loop. A missing API key permanently
// short-circuits into the error state: the loop never starts and no retries
// happen for the process lifetime.
func (p *Poller) Start() {
	if p.client.APIKey == "" {
		p.log.Warn("weather API key not set, weather panel will be unavailable")
		p.mu.Lock()
		p.snapshot = errorSnapshot(ErrTextKeyMissing, time.Now())
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	if p.stopCh != nil {
		p.mu.Unlock()
		return
	}
	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	p.mu.Unlock()

	p.stopped.Add(1)
	go p.run(stopCh)
}

// Stop halts the background loop. Safe to call when Start never ran.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopCh == nil {
		p.mu.Unlock()
		return
	}
	close(p.stopCh)
	p.stopCh = nil
	p.mu.Unlock()

	p.stopped.Wait()
}

// Snapshot returns the latest cached snapshot. Because the value is replaced
// wholesale under the lock, callers always observe either the loading state,
// a complete reading, or a complete error marker.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *Poller) run(stopCh chan struct{}) {
	defer p.stopped.Done()

	// Fire immediately on startup, then on the tick.
	p.refresh()

	ticker := time.NewTicker(pollTick)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

// refresh fetches a new reading if the refresh interval has elapsed since the
// last attempt. The fetch itself runs outside the lock; only the commit of the
// resulting snapshot is locked, so a slow request never blocks readers.
func (p *Poller) refresh() {
	p.mu.Lock()
	due := time.Since(p.lastAttempt) > p.interval
	p.mu.Unlock()

	if !due {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
	snap, err := p.client.Fetch(ctx)
	cancel()

	now := time.Now()
	if err != nil {
		p.log.WithField("error", err).Warn("weather fetch failed")
		snap = errorSnapshot(ErrTextUnavailable, now)
	} else {
		p.log.WithFields(logrus.Fields{
			"city": p.client.City,
			"temp": snap.TempC,
		}).Info("weather updated")
	}

	p.mu.Lock()
	p.snapshot = snap
	p.lastAttempt = now
	p.mu.Unlock()
}
