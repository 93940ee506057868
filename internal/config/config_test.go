package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/serene/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.SecondaryThreshold, convey.ShouldEqual, 0.3)
			convey.So(cfg.UrgencyHigh, convey.ShouldEqual, 0.8)
			convey.So(cfg.UrgencyMedium, convey.ShouldEqual, 0.5)
			convey.So(cfg.VarietyPenalty, convey.ShouldEqual, 0.9)
			convey.So(cfg.VarietyDecay, convey.ShouldEqual, 0.5)
			convey.So(cfg.BenefitLimit, convey.ShouldEqual, 3)
			convey.So(cfg.DefaultRecommendations, convey.ShouldEqual, 5)
			convey.So(cfg.MaxRecommendations, convey.ShouldEqual, 20)
			convey.So(cfg.FeedbackQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.RecentHistorySize, convey.ShouldEqual, 10)
		})

		convey.Convey("Then the default weight vector should sum to one", func() {
			sum := cfg.RelevanceWeight + cfg.PersonalizationWeight + cfg.EffectivenessWeight + cfg.VarietyWeight
			convey.So(sum, convey.ShouldAlmostEqual, 1.0)
		})
	})
}
