// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reports

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

//go:embed fixtures/reports.yaml
var fixtureData []byte

// Store supplies the report catalog and accepts changes to it. List returns
// reports in catalog order; Delete returns ErrNotFound for unknown ids.
type Store interface {
	List(ctx context.Context) ([]types.Report, error)
	Add(ctx context.Context, r types.Report) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Fixtures returns the built-in sample catalog.
func Fixtures() ([]types.Report, error) {
	return parseFixtures(fixtureData)
}

// LoadFixtures reads a catalog from a YAML file holding a list of reports.
func LoadFixtures(path string) ([]types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return parseFixtures(data)
}

func parseFixtures(data []byte) ([]types.Report, error) {
	var reports []types.Report
	if err := yaml.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	if err := CheckUnique(reports); err != nil {
		return nil, fmt.Errorf("validating fixtures: %w", err)
	}
	return reports, nil
}

// Open builds the Store selected by cfg, seeded from cfg.FixturesFile or
// the built-in catalog.
func Open(cfg types.ReportsConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		seed []types.Report
		err  error
	)
	if cfg.FixturesFile != "" {
		seed, err = LoadFixtures(cfg.FixturesFile)
	} else {
		seed, err = Fixtures()
	}
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.StoreMemory, "":
		logger.Debug("opening memory report store", zap.Int("reports", len(seed)))
		return NewMemoryStore(seed, cfg.LoadDelay)
	case types.StoreSQLite:
		logger.Debug("opening sqlite report store", zap.Int("reports", len(seed)))
		return NewSQLStore(context.Background(), seed, cfg.LoadDelay)
	}
	return nil, fmt.Errorf("%w: report store backend %q (want memory or sqlite)", ErrInvalidConfiguration, cfg.Backend)
}

// MemoryStore keeps the catalog in a slice. Every change replaces the
// whole slice.
type MemoryStore struct {
	mu        sync.RWMutex
	reports   []types.Report
	loadDelay time.Duration
}

// NewMemoryStore returns a store holding a copy of seed. loadDelay is
// waited on every List to mimic a remote catalog.
func NewMemoryStore(seed []types.Report, loadDelay time.Duration) (*MemoryStore, error) {
	if err := CheckUnique(seed); err != nil {
		return nil, err
	}
	return &MemoryStore{
		reports:   append([]types.Report(nil), seed...),
		loadDelay: loadDelay,
	}, nil
}

// List returns a copy of the catalog.
func (s *MemoryStore) List(ctx context.Context) ([]types.Report, error) {
	if err := sleep(ctx, s.loadDelay); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Report{}, s.reports...), nil
}

// Add appends r to the catalog.
func (s *MemoryStore) Add(ctx context.Context, r types.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]types.Report{}, s.reports...), r)
	if err := CheckUnique(next); err != nil {
		return err
	}
	s.reports = next
	return nil
}

// Delete removes the report with the given id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := RemoveReport(s.reports, id)
	if len(next) == len(s.reports) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.reports = next
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
