package testsupport

import (
	"path/filepath"
	"testing"

	"podtag/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.AlbumsDir = filepath.Join(base, "albums")
	cfg.Paths.VocabularyDB = filepath.Join(base, "podcast_system.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
