package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnogodumalon/habits/internal/dashboard"
	"github.com/mnogodumalon/habits/internal/livingapps"
)

// RefreshResultMsg is a tea.Msg sent when a dashboard reload completes.
type RefreshResultMsg struct {
	Error     error
	AuthError bool
	At        time.Time
}

// fetchTimeout is the maximum time allowed for a single reload.
const fetchTimeout = 30 * time.Second

// Loader is what the Refresher reloads. *dashboard.Dashboard satisfies it.
type Loader interface {
	Load(ctx context.Context) error
}

var _ Loader = (*dashboard.Dashboard)(nil)

// Refresher reloads the dashboard in the background, once at start, then
// on every tick and whenever Refresh is called.
type Refresher struct {
	loader    Loader
	interval  time.Duration
	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Refresher. An interval of zero or less disables periodic
// reloads; manual refreshes still work.
func New(loader Loader, interval time.Duration) *Refresher {
	return &Refresher{
		loader:    loader,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the refresh goroutine and returns a tea.Cmd that waits
// for the first result.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.waitForResult()
}

// Stop halts the refresh goroutine.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// Refresh triggers an immediate reload. Requests made while one is
// already pending are coalesced.
func (r *Refresher) Refresh() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

func (r *Refresher) loop() {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	r.reload()

	for {
		select {
		case <-r.stopCh:
			return
		case <-tick:
			r.reload()
		case <-r.triggerCh:
			r.reload()
		}
	}
}

func (r *Refresher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	err := r.loader.Load(ctx)
	r.sendResult(RefreshResultMsg{
		Error:     err,
		AuthError: livingapps.IsAuthError(err),
		At:        time.Now(),
	})
}

// sendResult sends a result on the result channel without blocking.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
	}
}

func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next reload
// result. Call it after handling each RefreshResultMsg.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}
