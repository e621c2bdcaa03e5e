// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultRetryBaseDelay is the first backoff wait when none is configured.
const DefaultRetryBaseDelay = 1 * time.Second

// retrying re-invokes an inner Discoverer with exponential backoff.
type retrying struct {
	inner     Discoverer
	retries   int
	baseDelay time.Duration
	logger    *zap.Logger
}

// WithRetry wraps d so failed discoveries are retried up to retries more
// times. The wait starts at baseDelay and doubles each attempt. Context
// cancellation and ErrEmptyTopic are never retried. When retries is zero d
// is returned unchanged.
func WithRetry(d Discoverer, retries int, baseDelay time.Duration, logger *zap.Logger) Discoverer {
	if retries <= 0 {
		return d
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &retrying{inner: d, retries: retries, baseDelay: baseDelay, logger: logger}
}

// FromConfig builds the configured discoverer: Replay when cfg.ReplayFile is
// set, Stub otherwise, wrapped with WithRetry.
func FromConfig(cfg types.DiscoveryConfig, logger *zap.Logger) (Discoverer, error) {
	var d Discoverer = NewStub(cfg)
	if cfg.ReplayFile != "" {
		r, err := NewReplay(cfg.ReplayFile)
		if err != nil {
			return nil, err
		}
		d = r
	}
	return WithRetry(d, cfg.Retries, cfg.RetryBaseDelay, logger), nil
}

func (r *retrying) Discover(ctx context.Context, topic string, maxResults int) ([]types.Paper, error) {
	for attempt := 0; ; attempt++ {
		papers, err := r.inner.Discover(ctx, topic, maxResults)
		if err == nil {
			return papers, nil
		}
		if attempt >= r.retries || !retryable(ctx, err) {
			return nil, err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * r.baseDelay
		r.logger.Debug("discovery failed, retrying",
			zap.String("topic", topic),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", r.retries),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, ErrEmptyTopic) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
