package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/marblehq/bountyboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.WinBonus, convey.ShouldEqual, 200)
				convey.So(cfg.PlacementFactor, convey.ShouldEqual, 20)
				convey.So(cfg.MaxScreenshots, convey.ShouldEqual, 5)
				convey.So(cfg.OCRLanguage, convey.ShouldEqual, "eng")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("BOUNTY_ADDR", ":8080")
			_ = os.Setenv("BOUNTY_WIN_BONUS", "500")
			_ = os.Setenv("BOUNTY_MAX_SCREENSHOTS", "3")
			_ = os.Setenv("BOUNTY_OCR_LANGUAGE", "deu")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WinBonus, convey.ShouldEqual, 500)
				convey.So(cfg.MaxScreenshots, convey.ShouldEqual, 3)
				convey.So(cfg.OCRLanguage, convey.ShouldEqual, "deu")
				convey.So(cfg.PlacementFactor, convey.ShouldEqual, 20) // default survives
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
data_file: "/var/lib/bounty/board.json"
win_bonus: 100
placement_factor: 10
max_screenshots: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("BOUNTY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataFile, convey.ShouldEqual, "/var/lib/bounty/board.json")
				convey.So(cfg.WinBonus, convey.ShouldEqual, 100)
				convey.So(cfg.PlacementFactor, convey.ShouldEqual, 10)
				convey.So(cfg.MaxScreenshots, convey.ShouldEqual, 4)
				convey.So(cfg.PageSize, convey.ShouldEqual, 25) // default survives
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
win_bonus: 100
max_screenshots: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("BOUNTY_CONFIG", tmpFile)
			_ = os.Setenv("BOUNTY_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")     // env wins
				convey.So(cfg.WinBonus, convey.ShouldEqual, 100)     // from file
				convey.So(cfg.MaxScreenshots, convey.ShouldEqual, 4) // from file
			})
		})

		convey.Convey("When loading config with an invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("BOUNTY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			_ = os.Setenv("BOUNTY_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr", func() {
			_ = os.Setenv("BOUNTY_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero screenshot cap", func() {
			_ = os.Setenv("BOUNTY_MAX_SCREENSHOTS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a tiny message limit", func() {
			_ = os.Setenv("BOUNTY_MESSAGE_LIMIT", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("BOUNTY_WIN_BONUS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"BOUNTY_CONFIG",
		"BOUNTY_ADDR",
		"BOUNTY_DATA_FILE",
		"BOUNTY_WIN_BONUS",
		"BOUNTY_PLACEMENT_FACTOR",
		"BOUNTY_MAX_SCREENSHOTS",
		"BOUNTY_MESSAGE_LIMIT",
		"BOUNTY_MAX_LEADERBOARD_LIMIT",
		"BOUNTY_PAGE_SIZE",
		"BOUNTY_QUEUE_SIZE",
		"BOUNTY_OCR_LANGUAGE",
		"BOUNTY_OCR_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "bounty-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
