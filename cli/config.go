package cli

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/mvdouden/ledgerreport/ledger"
)

// FileConfig is the on-disk configuration: where the ledger data comes from,
// which commodity reports are stated in, and the chart-of-accounts names.
type FileConfig struct {
	LedgerFile string   `toml:"ledger_file"`
	LedgerArgs []string `toml:"ledger_args"`
	Commodity  string   `toml:"report_commodity"`

	Report ledger.Config `toml:"report"`
}

// DefaultFileConfig returns the configuration with conventional defaults.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		LedgerFile: "ledger.journal",
		Commodity:  "$",
		Report:     *ledger.DefaultConfig(),
	}
}

// loadConfig reads the configuration file named by the global flag, layered
// over the defaults. A missing file yields the defaults.
func loadConfig(globals *Globals) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	data, err := os.ReadFile(globals.Config)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", globals.Config, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", globals.Config, err)
	}

	return cfg, nil
}

// writeConfig marshals the configuration to the given path.
func writeConfig(path string, cfg *FileConfig) error {
	data, err := toml.Marshal(*cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
