// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's sentinel errors.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile is the path of the persisted bounty board JSON file.
	DataFile string `koanf:"data_file"`

	// WinBonus is the flat bounty awarded to the race winner.
	WinBonus int `koanf:"win_bonus"`

	// PlacementFactor scales the per-position bounty delta.
	PlacementFactor int `koanf:"placement_factor"`

	// MaxScreenshots caps the number of screenshots per submission.
	MaxScreenshots int `koanf:"max_screenshots"`

	// MessageLimit caps the size of one rendered message chunk.
	MessageLimit int `koanf:"message_limit"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// PageSize sets the number of leaderboard rows per page.
	PageSize int `koanf:"page_size"`

	// QueueSize bounds the ledger mutation task queue.
	QueueSize int `koanf:"queue_size"`

	// OCRLanguage selects the recognition language model.
	OCRLanguage string `koanf:"ocr_language"`

	// OCRTimeoutMS bounds recognition time per screenshot in milliseconds.
	OCRTimeoutMS int `koanf:"ocr_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DataFile:            "bounty_board.json",
		WinBonus:            200,
		PlacementFactor:     20,
		MaxScreenshots:      5,
		MessageLimit:        2000,
		MaxLeaderboardLimit: 100,
		PageSize:            25,
		QueueSize:           64,
		OCRLanguage:         "eng",
		OCRTimeoutMS:        30_000,
	}
}
