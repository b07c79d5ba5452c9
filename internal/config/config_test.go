package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := New()

		convey.Convey("Then the service defaults should be set", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.StorePath, convey.ShouldEqual, "data/ledger.json")
			convey.So(cfg.HistoryLimit, convey.ShouldEqual, 0)
			convey.So(cfg.FlushQueueSize, convey.ShouldEqual, 64)
		})

		convey.Convey("Then the scoring defaults should match the engine policy", func() {
			convey.So(cfg.RiskHorizonDays, convey.ShouldEqual, 14)
			convey.So(cfg.CompletionCutoff, convey.ShouldEqual, 50)
			convey.So(cfg.PipelinePenalty, convey.ShouldEqual, -20)
			convey.So(cfg.BillablePenalty, convey.ShouldEqual, -25)
			convey.So(cfg.OverduePenalty, convey.ShouldEqual, -15)
			convey.So(cfg.DeliverablePenalty, convey.ShouldEqual, -20)
		})

		convey.Convey("Then the seed profile defaults should be sane", func() {
			convey.So(cfg.SeedBillableTargetHours, convey.ShouldEqual, 10)
			convey.So(cfg.SeedPipelineTarget, convey.ShouldEqual, 3)
			convey.So(cfg.SeedInvoiceGraceDays, convey.ShouldEqual, 7)
			convey.So(cfg.SeedBillableHoursPlanned, convey.ShouldEqual, 8)
		})
	})
}

func TestLoad(t *testing.T) {
	convey.Convey("Given the process environment", t, func() {
		ctx := context.Background()

		convey.Convey("When no overrides are present", func() {
			cfg, err := Load(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
		})

		convey.Convey("When env vars override defaults", func() {
			t.Setenv("LEDGERWEEK_ADDR", ":7070")
			t.Setenv("LEDGERWEEK_HISTORY_LIMIT", "12")
			t.Setenv("LEDGERWEEK_LOG_LEVEL", "debug")

			cfg, err := Load(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.HistoryLimit, convey.ShouldEqual, 12)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")

			convey.Convey("Then untouched keys should keep their defaults", func() {
				convey.So(cfg.StorePath, convey.ShouldEqual, "data/ledger.json")
			})
		})

		convey.Convey("When a YAML file is layered under env", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":6060\"\nstore_path: \"/tmp/test-ledger.json\"\nrisk_horizon_days: 7\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			t.Setenv("LEDGERWEEK_CONFIG", path)
			t.Setenv("LEDGERWEEK_ADDR", ":7070")

			cfg, err := Load(ctx)

			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then env should beat the file, and the file should beat defaults", func() {
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.StorePath, convey.ShouldEqual, "/tmp/test-ledger.json")
				convey.So(cfg.RiskHorizonDays, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When the config file is missing", func() {
			t.Setenv("LEDGERWEEK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

			_, err := Load(ctx)

			convey.So(err, convey.ShouldWrap, ErrLoadConfig)
		})

		convey.Convey("When the file blanks a required key", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(path, []byte("store_path: \"\"\n"), 0o600), convey.ShouldBeNil)
			t.Setenv("LEDGERWEEK_CONFIG", path)

			_, err := Load(ctx)

			convey.So(err, convey.ShouldWrap, ErrInvalidConfig)
		})
	})
}
