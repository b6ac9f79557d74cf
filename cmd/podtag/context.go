package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"podtag/internal/album"
	"podtag/internal/config"
	"podtag/internal/logging"
	"podtag/internal/vocab"
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
		if err := cfg.EnsureDirectories(); err != nil {
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
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// mutationContext tags the context with a fresh correlation id so every log
// line from one mutating command can be tied together.
func (c *commandContext) mutationContext(ctx context.Context) context.Context {
	return logging.WithCorrelationID(ctx, uuid.NewString())
}

// withVocab opens the shared vocabulary store for the duration of fn.
func (c *commandContext) withVocab(fn func(*vocab.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := vocab.Open(cfg)
	if err != nil {
		return fmt.Errorf("open vocabulary store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// withAlbum opens the album store for albumID for the duration of fn.
func (c *commandContext) withAlbum(albumID string, fn func(*album.Store) error) error {
	path, err := c.albumDBPath(albumID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("album %s has no local data; run `podtag fetch %s` first", albumID, albumID)
	}
	store, err := album.OpenPath(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withNewAlbum is withAlbum minus the existence check, creating the album
// directory on demand. Used by ingestion.
func (c *commandContext) withNewAlbum(albumID string, fn func(*album.Store) error) error {
	path, err := c.albumDBPath(albumID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create album directory: %w", err)
	}
	store, err := album.OpenPath(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) albumDBPath(albumID string) (string, error) {
	albumID = strings.TrimSpace(albumID)
	if albumID == "" {
		return "", fmt.Errorf("album id is empty")
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return album.DBPath(cfg.Paths.AlbumsDir, albumID), nil
}
