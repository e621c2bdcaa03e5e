// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/discover"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Viper keys. They mirror the yaml tags of types.AssistantConfig so a
// config file can be written by marshaling that struct.
const (
	keyMaxResults     = "wizard.max_results"
	keyDelay          = "wizard.discovery.delay"
	keyRetries        = "wizard.discovery.retries"
	keyRetryBaseDelay = "wizard.discovery.retry_base_delay"
	keyReplayFile     = "wizard.discovery.replay_file"
	keyBackend        = "reports.backend"
	keyLoadDelay      = "reports.load_delay"
	keyFixturesFile   = "reports.fixtures_file"
)

// defaultLoadDelay simulates fetching the catalog from a server.
const defaultLoadDelay = time.Second

func setConfigDefaults() {
	viper.SetDefault(keyMaxResults, types.DefaultMaxResults)
	viper.SetDefault(keyDelay, discover.DefaultStubDelay)
	viper.SetDefault(keyRetries, 0)
	viper.SetDefault(keyRetryBaseDelay, discover.DefaultRetryBaseDelay)
	viper.SetDefault(keyBackend, string(types.StoreMemory))
	viper.SetDefault(keyLoadDelay, defaultLoadDelay)
}

// loadConfig assembles the effective configuration from defaults, the
// config file, the environment, and bound flags.
func loadConfig() types.AssistantConfig {
	return types.AssistantConfig{
		Wizard: types.WizardConfig{
			MaxResults: viper.GetInt(keyMaxResults),
			Discovery: types.DiscoveryConfig{
				Delay:          viper.GetDuration(keyDelay),
				Retries:        viper.GetInt(keyRetries),
				RetryBaseDelay: viper.GetDuration(keyRetryBaseDelay),
				ReplayFile:     viper.GetString(keyReplayFile),
			},
		},
		Reports: types.ReportsConfig{
			Backend:      types.StoreBackend(viper.GetString(keyBackend)),
			LoadDelay:    viper.GetDuration(keyLoadDelay),
			FixturesFile: viper.GetString(keyFixturesFile),
		},
		Verbose: viper.GetBool("verbose"),
	}
}
