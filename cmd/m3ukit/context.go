package main

import (
	"log/slog"
	"strings"
	"sync"

	"m3ukit/internal/config"
	"m3ukit/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger returns the shared logger. When configuration cannot be
// loaded the logger falls back to defaults so commands can still report
// the configuration error itself.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		opts := logging.Options{}
		if cfg, err := c.ensureConfig(); err == nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger, _ = logging.New(logging.Options{})
		}
		c.logger = logger
	})
	return c.logger
}
