package clock

import (
	"sync"
	"time"
)

// Manual is a Clock that only moves when Advance is called.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[*manualTicker]struct{}
}

// NewManual returns a manual clock frozen at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start.UTC(), tickers: make(map[*manualTicker]struct{})}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTicker{owner: m, period: d, next: m.now.Add(d), ch: make(chan time.Time, 1)}
	m.tickers[t] = struct{}{}
	return t
}

// Advance moves the clock forward and fires every ticker that came due.
// Like time.Ticker, a tick is dropped when the previous one was not consumed.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	for t := range m.tickers {
		for !t.next.After(m.now) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
}

// ActiveTickers reports how many tickers have been created and not stopped.
func (m *Manual) ActiveTickers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

type manualTicker struct {
	owner  *Manual
	period time.Duration
	next   time.Time
	ch     chan time.Time
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	delete(t.owner.tickers, t)
}
