package config

const (
	defaultAlbumsDir       = "~/.local/share/podtag/albums"
	defaultVocabularyDB    = "~/.local/share/podtag/podcast_system.db"
	defaultLogDir          = "~/.local/share/podtag/logs"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultFeedURLTemplate = "https://www.ximalaya.com/album/%s.xml"
	defaultFeedTimeout     = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AlbumsDir:    defaultAlbumsDir,
			VocabularyDB: defaultVocabularyDB,
			LogDir:       defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Feed: Feed{
			URLTemplate:    defaultFeedURLTemplate,
			TimeoutSeconds: defaultFeedTimeout,
		},
	}
}
