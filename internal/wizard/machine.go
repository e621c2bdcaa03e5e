// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/discover"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Machine owns one wizard session. It applies events one at a time and
// runs at most one discovery in the background. Each discovery is tagged
// with a generation; Reset and Close advance the generation so a result
// that arrives afterwards is dropped instead of overwriting the fresh state.
type Machine struct {
	discoverer discover.Discoverer
	logger     *zap.Logger
	defaultMax int

	mu      sync.Mutex
	state   State
	gen     uint64
	cancel  context.CancelFunc
	idle    chan struct{} // closed when no discovery is outstanding
	lastErr error         // outcome of the most recent discovery
	closed  bool

	wg sync.WaitGroup
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDefaultMaxResults sets the MaxResults of the initial and reset state.
func WithDefaultMaxResults(n int) Option {
	return func(m *Machine) {
		m.defaultMax = n
	}
}

// NewMachine returns a Machine in the initial state that discovers papers
// with d.
func NewMachine(d discover.Discoverer, opts ...Option) *Machine {
	m := &Machine{
		discoverer: d,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = Initial(m.defaultMax)
	m.idle = closedChan()
	return m
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Dispatch applies a user event and returns the resulting state.
// SubmitTopic returns as soon as the discovery has started; use Wait to
// block until it settles. DiscoveryCompleted is internal and rejected here.
func (m *Machine) Dispatch(ev Event) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return m.state.Clone(), ErrClosed
	}
	if _, ok := ev.(DiscoveryCompleted); ok {
		return m.state.Clone(), fmt.Errorf("%w: discovery results are delivered by the machine", ErrWrongStage)
	}

	if r, ok := ev.(Reset); ok {
		if r.MaxResults == 0 {
			ev = Reset{MaxResults: m.defaultMax}
		}
		m.abandonLocked()
	}

	prev := m.state
	next, err := Reduce(prev, ev)
	m.state = next
	if err != nil {
		m.logger.Debug("event rejected",
			zap.String("event", fmt.Sprintf("%T", ev)),
			zap.Stringer("stage", prev.Stage),
			zap.Error(err))
		return next.Clone(), err
	}

	switch ev := ev.(type) {
	case SubmitTopic:
		m.startLocked(next.Topic, next.MaxResults)
	case ToggleSelection:
		m.logger.Debug("selection toggled", zap.String("paper_id", ev.PaperID))
	case ConfirmSelection:
		m.logger.Info("selection confirmed",
			zap.String("topic", next.Topic),
			zap.Int("chosen", len(next.Chosen)))
	case Reset:
		m.logger.Info("wizard reset", zap.Stringer("from", prev.Stage))
	}
	return next.Clone(), nil
}

// SubmitTopic dispatches a SubmitTopic event.
func (m *Machine) SubmitTopic(topic string, maxResults int) error {
	_, err := m.Dispatch(SubmitTopic{Topic: topic, MaxResults: maxResults})
	return err
}

// ToggleSelection dispatches a ToggleSelection event.
func (m *Machine) ToggleSelection(paperID string) error {
	_, err := m.Dispatch(ToggleSelection{PaperID: paperID})
	return err
}

// ConfirmSelection dispatches a ConfirmSelection event.
func (m *Machine) ConfirmSelection() error {
	_, err := m.Dispatch(ConfirmSelection{})
	return err
}

// Reset returns the wizard to its initial state and cancels any
// outstanding discovery. It always succeeds on an open Machine.
func (m *Machine) Reset() State {
	s, _ := m.Dispatch(Reset{})
	return s
}

// Wait blocks until no discovery is outstanding or ctx is done. It returns
// the current state and the error of the most recent discovery, wrapped
// with ErrDiscovery.
func (m *Machine) Wait(ctx context.Context) (State, error) {
	m.mu.Lock()
	idle := m.idle
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return m.State(), ctx.Err()
	case <-idle:
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), m.lastErr
}

// Close cancels any outstanding discovery and waits for its goroutine to
// exit. Further events return ErrClosed.
func (m *Machine) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.abandonLocked()
	m.state.Searching = false
	m.mu.Unlock()

	m.wg.Wait()
	return nil
}

// startLocked launches the discovery for a freshly submitted topic.
func (m *Machine) startLocked(topic string, maxResults int) {
	m.gen++
	gen := m.gen
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.idle = make(chan struct{})
	m.lastErr = nil

	m.logger.Info("topic submitted",
		zap.String("topic", topic),
		zap.Int("max_results", maxResults),
		zap.Uint64("generation", gen))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		papers, err := m.discoverer.Discover(ctx, topic, maxResults)
		m.complete(gen, papers, err)
	}()
}

// complete applies a discovery outcome if it still belongs to the current
// generation.
func (m *Machine) complete(gen uint64, papers []types.Paper, derr error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || m.closed {
		m.logger.Debug("discarding stale discovery",
			zap.Uint64("generation", gen),
			zap.Uint64("current", m.gen))
		return
	}

	m.cancel()
	m.cancel = nil

	next, err := Reduce(m.state, DiscoveryCompleted{Papers: papers, Err: derr})
	m.state = next
	m.lastErr = err
	if err != nil {
		m.logger.Warn("discovery failed", zap.String("topic", next.Topic), zap.Error(err))
	} else {
		m.logger.Info("discovery completed",
			zap.String("topic", next.Topic),
			zap.Int("candidates", len(next.Candidates)))
	}
	close(m.idle)
}

// abandonLocked cancels the outstanding discovery, if any, and advances the
// generation so its result is ignored.
func (m *Machine) abandonLocked() {
	m.gen++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		close(m.idle)
		m.idle = closedChan()
	}
	m.lastErr = nil
}
