package main

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/ledgerweek/internal/adapters/http/api"
	"github.com/okian/ledgerweek/internal/adapters/http/swagger"
	service "github.com/okian/ledgerweek/internal/app"
	"github.com/okian/ledgerweek/internal/config"
	"github.com/okian/ledgerweek/internal/domain/scoring"
	"github.com/okian/ledgerweek/pkg/logger"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("When loading configuration from the environment", func() {
			t.Setenv("LEDGERWEEK_ADDR", ":8080")
			t.Setenv("LEDGERWEEK_HISTORY_LIMIT", "26")

			cfg, err := config.Load(context.Background())

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.HistoryLimit, convey.ShouldEqual, 26)
		})

		convey.Convey("When creating the service", func() {
			convey.Convey("Then defaults should suffice", func() {
				convey.So(service.New(), convey.ShouldNotBeNil)
			})

			convey.Convey("And config-driven options should apply", func() {
				svc := service.New(
					service.WithStorePath(filepath.Join(t.TempDir(), "ledger.json")),
					service.WithHistoryLimit(26),
					service.WithScoring(scoring.WithRiskHorizon(7)),
				)

				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the HTTP mux", func() {
			svc := service.New(
				service.WithStorePath(filepath.Join(t.TempDir(), "ledger.json")),
			)
			ctx := context.Background()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.Convey("Then the core routes should resolve", func() {
				for _, path := range []string{"/score", "/profile", "/weeks", "/healthz", "/api-docs"} {
					req, err := http.NewRequest(http.MethodGet, path, http.NoBody)
					convey.So(err, convey.ShouldBeNil)

					_, pattern := mux.Handler(req)
					convey.So(pattern, convey.ShouldNotBeEmpty)
				}
			})
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When invoked", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
