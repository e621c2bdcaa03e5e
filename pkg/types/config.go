package types

import "time"

// Bounds for the number of papers a single discovery may return.
const (
	DefaultMaxResults = 5
	MaxMaxResults     = 20
)

// DiscoveryConfig holds settings for the paper-discovery collaborator.
type DiscoveryConfig struct {
	// Delay is how long the stub discoverer waits before answering (default 1.5s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Retries is the number of extra attempts after a failed discovery (default 0).
	Retries int `json:"retries" yaml:"retries"`

	// RetryBaseDelay is the first backoff wait; it doubles on each attempt (default 1s).
	RetryBaseDelay time.Duration `json:"retry_base_delay" yaml:"retry_base_delay"`

	// ReplayFile, when set, serves candidates from a saved query file
	// instead of synthesizing them.
	ReplayFile string `json:"replay_file,omitempty" yaml:"replay_file,omitempty"`
}

// WizardConfig holds settings for the research wizard.
type WizardConfig struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`

	// MaxResults is the default number of papers requested (default 5, at most 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// StoreBackend identifies the report-store implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreSQLite StoreBackend = "sqlite"
)

// ReportsConfig holds settings for the report catalog.
type ReportsConfig struct {
	// Backend selects the store: memory or sqlite.
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// LoadDelay simulates catalog load latency (default 0).
	LoadDelay time.Duration `json:"load_delay" yaml:"load_delay"`

	// FixturesFile overrides the embedded fixture catalog with a YAML file.
	FixturesFile string `json:"fixtures_file,omitempty" yaml:"fixtures_file,omitempty"`
}

// AssistantConfig groups all component configurations.
type AssistantConfig struct {
	Wizard  WizardConfig  `json:"wizard" yaml:"wizard"`
	Reports ReportsConfig `json:"reports" yaml:"reports"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// ClampMaxResults returns n bounded to [1, MaxMaxResults]. Zero or negative
// values fall back to DefaultMaxResults.
func ClampMaxResults(n int) int {
	switch {
	case n <= 0:
		return DefaultMaxResults
	case n > MaxMaxResults:
		return MaxMaxResults
	}
	return n
}
