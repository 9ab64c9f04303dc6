// Package config loads logharvest's INI configuration file.
package config

import (
	"github.com/scalingdata/gcfg"
)

// Config is the on-disk shape of logharvest.ini.
type Config struct {
	General struct {
		TmpDir    string
		Verbosity int
	}

	Archive struct {
		// NamePatterns holds regular expressions every archive entry
		// must match to be considered for parsing.
		NamePatterns []string
		// Extensions holds the suffixes an archive entry must end
		// with to be considered for parsing.
		Extensions []string
		// RegistryPath is where processed-archive fingerprints are
		// recorded.
		RegistryPath string
	}

	Sink struct {
		Addresses         []string
		CredentialsIndex  string
		CookieBundleIndex string
	}
}

// Load reads and parses the INI file at path.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
