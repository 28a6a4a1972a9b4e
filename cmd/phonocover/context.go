package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"phonocover/internal/config"
	"phonocover/internal/logging"
	"phonocover/internal/pronounce"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	resolverOnce sync.Once
	resolver     *pronounce.Resolver
	resolverErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerValue builds the process logger once. A logger that cannot be built
// (for example an unwritable log directory) degrades to stderr only.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		if cfg != nil && c.verboseFlag != nil && *c.verboseFlag {
			clone := *cfg
			clone.Logging.Level = "debug"
			cfg = &clone
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "info", Format: "console"})
			if logger == nil {
				logger = logging.NewNop()
			}
			logging.WarnWithContext(logger, "falling back to stderr logging", "logger_fallback",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check logging and paths.log_dir settings"))
		}
		c.logger = logger
	})
	return c.logger
}

// resolverValue loads the configured pronunciation dictionary once.
func (c *commandContext) resolverValue() (*pronounce.Resolver, error) {
	c.resolverOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.resolverErr = err
			return
		}
		path := strings.TrimSpace(cfg.Paths.Dictionary)
		if path == "" {
			c.resolverErr = errors.New("no pronunciation dictionary configured; set paths.dictionary or PHONOCOVER_DICTIONARY")
			return
		}
		dict, err := pronounce.LoadFile(path, c.loggerValue())
		if err != nil {
			c.resolverErr = fmt.Errorf("load pronunciation dictionary: %w", err)
			return
		}
		c.resolver = pronounce.NewResolver(dict)
	})
	return c.resolver, c.resolverErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
