package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/serene/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

// configEnvVars are the variables the loader reads; cleared before each case
// so tests do not leak into one another.
var configEnvVars = []string{
	"SERENE_CONFIG",
	"SERENE_ADDR",
	"SERENE_LOG_LEVEL",
	"SERENE_SECONDARY_THRESHOLD",
	"SERENE_URGENCY_HIGH",
	"SERENE_URGENCY_MEDIUM",
	"SERENE_RELEVANCE_WEIGHT",
	"SERENE_PERSONALIZATION_WEIGHT",
	"SERENE_EFFECTIVENESS_WEIGHT",
	"SERENE_VARIETY_WEIGHT",
	"SERENE_WORKER_COUNT",
	"SERENE_FEEDBACK_QUEUE_SIZE",
	"SERENE_MAX_RECOMMENDATIONS",
	"SERENE_DEFAULT_RECOMMENDATIONS",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxRecommendations, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("SERENE_ADDR", ":8088")
			t.Setenv("SERENE_URGENCY_HIGH", "0.9")
			t.Setenv("SERENE_WORKER_COUNT", "3")

			cfg, err := config.Load()

			convey.Convey("Then the environment should override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8088")
				convey.So(cfg.UrgencyHigh, convey.ShouldEqual, 0.9)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.UrgencyMedium, convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "serene.yaml")
			yaml := "addr: \":7070\"\nsecondary_threshold: 0.25\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			t.Setenv("SERENE_CONFIG", path)

			cfg, err := config.Load()

			convey.Convey("Then the file should override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.SecondaryThreshold, convey.ShouldEqual, 0.25)
			})

			convey.Convey("And the environment should override the file", func() {
				t.Setenv("SERENE_ADDR", ":6060")

				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file is missing", func() {
			t.Setenv("SERENE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

			_, err := config.Load()

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
			})
		})

		convey.Convey("When the scoring weights do not sum to one", func() {
			t.Setenv("SERENE_RELEVANCE_WEIGHT", "0.9")

			_, err := config.Load()

			convey.Convey("Then validation should reject the config", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When urgency thresholds are inverted", func() {
			t.Setenv("SERENE_URGENCY_HIGH", "0.4")

			_, err := config.Load()

			convey.Convey("Then validation should reject the config", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
