package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "gosmithy.toml"

// projectConfig is the on-disk project configuration.
//
//	sources = ["model", "vendor/smithy"]
//
//	[output]
//	format = "json"
//
//	[cache]
//	enabled = true
//	dir = ".gosmithy-cache"
type projectConfig struct {
	Sources []string `toml:"sources"`
	Output  struct {
		Format string `toml:"format"`
	} `toml:"output"`
	Cache struct {
		Enabled bool   `toml:"enabled"`
		Dir     string `toml:"dir"`
	} `toml:"cache"`

	// dir is the directory the config file lives in; relative source
	// paths resolve against it.
	dir string
}

// applyConfig loads the project config file, if any, and folds its
// sources into the CLI's path list. An explicitly named config file must
// exist; the default one is optional.
func (c *cli) applyConfig() error {
	path := c.config
	required := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	cfg, err := loadConfig(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return err
	}

	for _, s := range cfg.Sources {
		if !filepath.IsAbs(s) {
			s = filepath.Join(cfg.dir, s)
		}
		c.paths = append(c.paths, s)
	}
	c.projectConfig = cfg
	return nil
}

func loadConfig(path string) (*projectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg projectConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}
