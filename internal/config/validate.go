package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for values the rest of the system cannot
// work with. It reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.AlbumsDir) == "" {
		problems = append(problems, "paths.albums_dir must be set")
	}
	if strings.TrimSpace(c.Paths.VocabularyDB) == "" {
		problems = append(problems, "paths.vocabulary_db must be set")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level: unsupported value %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if c.Feed.TimeoutSeconds < 0 {
		problems = append(problems, "feed.timeout_seconds must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
