package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSelection()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if value, ok := os.LookupEnv("PHONOCOVER_DICTIONARY"); ok && strings.TrimSpace(value) != "" {
		if strings.TrimSpace(c.Paths.Dictionary) == "" || c.Paths.Dictionary == defaultDictionary {
			c.Paths.Dictionary = strings.TrimSpace(value)
		}
	}
	if c.Paths.Dictionary, err = expandPath(strings.TrimSpace(c.Paths.Dictionary)); err != nil {
		return fmt.Errorf("paths.dictionary: %w", err)
	}

	if strings.TrimSpace(c.Paths.PicksFile) == "" {
		c.Paths.PicksFile = filepath.Join(c.Paths.DataDir, defaultPicksFileName)
	}
	if c.Paths.PicksFile, err = expandPath(c.Paths.PicksFile); err != nil {
		return fmt.Errorf("paths.picks_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.RunsDB) == "" {
		c.Paths.RunsDB = filepath.Join(c.Paths.DataDir, defaultRunsDBName)
	}
	if c.Paths.RunsDB, err = expandPath(c.Paths.RunsDB); err != nil {
		return fmt.Errorf("paths.runs_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeSelection() {
	c.Selection.TieBreak = strings.ToLower(strings.TrimSpace(c.Selection.TieBreak))
	if c.Selection.TieBreak == "" {
		c.Selection.TieBreak = defaultTieBreak
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
