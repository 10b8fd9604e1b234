package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"green_index/internal/clock"
	"green_index/internal/logger"
	"green_index/internal/models"
	"green_index/internal/repository"
)

const DefaultSimulationInterval = 5 * time.Second

var ErrInvalidInterval = errors.New("simulation interval must be positive")

// Ticker advances simulated sensors by one interval and reports how many it
// touched. SensorEngine implements it.
type Ticker interface {
	SimulateTick(interval time.Duration) int
}

// SimulationStatus describes the simulation loop.
type SimulationStatus struct {
	Running    bool       `json:"running"`
	IntervalMS int64      `json:"interval_ms,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	Ticks      uint64     `json:"ticks"`
}

// SimulatorService drives the engine's simulation from a single ticker.
type SimulatorService struct {
	target    Ticker
	eventRepo repository.EventRepo
	clock     clock.Clock
	metrics   Metrics
	log       *logger.Logger

	mu        sync.Mutex
	running   bool
	stopping  bool
	interval  time.Duration
	startedAt time.Time
	ticks     atomic.Uint64 // written by run without mu
	stop      chan struct{}
	done      chan struct{}
}

func NewSimulatorService(target Ticker, eventRepo repository.EventRepo, clk clock.Clock, metrics Metrics, log *logger.Logger) *SimulatorService {
	if clk == nil {
		clk = clock.Real{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{
		target:    target,
		eventRepo: eventRepo,
		clock:     clk,
		metrics:   metrics,
		log:       log,
	}
}

// Start begins ticking every interval. Starting a running simulation is a
// no-op, even with a different interval. A Start racing a pending Stop waits
// for the stop to finish and then starts afresh.
func (s *SimulatorService) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	s.mu.Lock()
	for s.stopping {
		done := s.done
		s.mu.Unlock()
		<-done
		s.mu.Lock()
	}
	if s.running {
		s.mu.Unlock()
		return nil
	}
	t := s.clock.NewTicker(interval)
	s.running = true
	s.interval = interval
	s.startedAt = s.clock.Now()
	s.ticks.Store(0)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(t, interval, s.stop, s.done)
	s.mu.Unlock()

	s.appendEvent(ctx, models.EventSimulationStart, "Simulation started", map[string]any{
		"interval_ms": interval.Milliseconds(),
	})
	return nil
}

// Stop prevents future ticks and waits for an in-flight tick to finish.
// Stopping an idle simulation is a no-op. Stop must not be called from a
// reading subscriber, which runs inside the tick it would wait for.
func (s *SimulatorService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	done := s.done
	if s.stopping {
		s.mu.Unlock()
		<-done
		return nil
	}
	s.stopping = true
	close(s.stop)
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	s.running = false
	s.stopping = false
	ticks := s.ticks.Load()
	s.mu.Unlock()

	s.appendEvent(ctx, models.EventSimulationStop, "Simulation stopped", map[string]any{
		"ticks": ticks,
	})
	return nil
}

// Status never waits on a tick; a simulation that is stopping reports as
// not running.
func (s *SimulatorService) Status() SimulationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.running && !s.stopping
	st := SimulationStatus{Running: active, Ticks: s.ticks.Load()}
	if active {
		started := s.startedAt
		st.IntervalMS = s.interval.Milliseconds()
		st.StartedAt = &started
	}
	return st
}

func (s *SimulatorService) run(t clock.Ticker, interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			// a tick and stop can be ready together
			select {
			case <-stop:
				return
			default:
			}
			began := time.Now()
			n := s.target.SimulateTick(interval)
			s.metrics.SimulationTick(n, time.Since(began))
			s.ticks.Add(1)
		}
	}
}

func (s *SimulatorService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.SystemEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.clock.Now(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("simulation_event_append_failed", "type", typ, "err", err)
	}
}
