package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultConfigPath = "ctfmt.toml"

// config is the optional ctfmt.toml. Flags win over it.
type config struct {
	Locale string      `toml:"locale"`
	Jobs   int         `toml:"jobs"`
	Format string      `toml:"format"`
	Color  string      `toml:"color"`
	Cache  cacheConfig `toml:"cache"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// loadConfig reads path. A missing file is fine unless the path was given
// explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	var cfg config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config{}, nil
		}
		return config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
