// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover supplies candidate papers for a research topic. The
// wizard depends only on the Discoverer interface; Stub synthesizes
// papers, Replay serves a saved query file, and WithRetry wraps either
// with exponential backoff.
package discover

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrEmptyTopic is returned when a discoverer is asked about a blank topic.
var ErrEmptyTopic = errors.New("topic is empty")

// Discoverer finds candidate papers for a topic. Implementations return
// at most maxResults papers, all with Selected=false, and honor ctx
// cancellation.
type Discoverer interface {
	Discover(ctx context.Context, topic string, maxResults int) ([]types.Paper, error)
}

// Func adapts an ordinary function to the Discoverer interface.
type Func func(ctx context.Context, topic string, maxResults int) ([]types.Paper, error)

// Discover calls f.
func (f Func) Discover(ctx context.Context, topic string, maxResults int) ([]types.Paper, error) {
	return f(ctx, topic, maxResults)
}

// DefaultStubDelay approximates the latency of a real search backend.
const DefaultStubDelay = 1500 * time.Millisecond

// Stub synthesizes papers from the topic after a fixed delay. It stands in
// for a real academic search backend.
type Stub struct {
	// Delay is how long Discover waits before answering. Zero answers immediately.
	Delay time.Duration

	// BaseYear is the year of the first paper; later papers are one year older.
	// Zero uses 2023.
	BaseYear int
}

// NewStub returns a Stub configured from cfg.
func NewStub(cfg types.DiscoveryConfig) *Stub {
	return &Stub{Delay: cfg.Delay}
}

// Discover waits for s.Delay (or ctx cancellation) and returns maxResults
// synthesized papers.
func (s *Stub) Discover(ctx context.Context, topic string, maxResults int) ([]types.Paper, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if maxResults < 1 {
		return nil, fmt.Errorf("max results must be at least 1, got %d", maxResults)
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseYear := s.BaseYear
	if baseYear == 0 {
		baseYear = 2023
	}

	papers := make([]types.Paper, maxResults)
	for i := range papers {
		n := i + 1
		papers[i] = types.Paper{
			ID:      fmt.Sprintf("paper-%d", n),
			Title:   fmt.Sprintf("Research Paper on %s - %d", topic, n),
			Authors: []string{fmt.Sprintf("Author %dA", n), fmt.Sprintf("Author %dB", n)},
			Abstract: fmt.Sprintf("This is a sample abstract for a research paper about %s. "+
				"It demonstrates the type of content that would be returned from a real search.", topic),
			Year: baseYear - i,
			URL:  fmt.Sprintf("https://example.com/paper-%d", n),
		}
	}
	return papers, nil
}
