package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"pintidy/internal/config"
	"pintidy/internal/fuzzy"
	"pintidy/internal/games"
	"pintidy/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("configure logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// auditLogger opens the JSON file log under paths.log_dir. Destructive
// passes log there so every rename and delete leaves a durable record
// alongside the backup session. The caller closes the returned closer.
func (c *commandContext) auditLogger() (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFileLogger(filepath.Join(cfg.Paths.LogDir, "pintidy.log"), cfg.Logging.Level)
}

func (c *commandContext) loadGames() ([]*games.Game, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	gameList, err := games.LoadDatabase(cfg.Paths.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("load table database: %w", err)
	}
	return gameList, nil
}

func (c *commandContext) normalizer() (*fuzzy.Normalizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return fuzzy.NewNormalizer(cfg.Matching.AuthorTokens, cfg.Matching.DecorationTokens), nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
