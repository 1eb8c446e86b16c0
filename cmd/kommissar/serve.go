package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/kommissar/internal/config"
	"github.com/sandevgo/kommissar/internal/providers/history"
	"github.com/sandevgo/kommissar/internal/providers/stability"
	"github.com/sandevgo/kommissar/internal/service/digest"
	"github.com/sandevgo/kommissar/internal/transport/httpapi"
	"github.com/sandevgo/kommissar/pkg/log"
	"github.com/sandevgo/kommissar/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the digest over HTTP",
	Long:  `Loads today's digest, generates images serially, and serves the result as a JSON API with refresh and per-event retry endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting kommissar")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("kommissar has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func NewServices(ctx context.Context) []srv.Service {
	appCfg := config.NewAppConfig(ctx)
	stabilityCfg := config.NewStabilityConfig(ctx)

	source := history.NewClient(appCfg.HistoryBaseURL)
	images := stability.NewClient(stabilityCfg.BaseURL, stabilityCfg.APIKey, stabilityCfg.Engine)

	digestService := digest.NewService(source, images, promptBuilder(appCfg))
	apiServer := httpapi.NewServer(appCfg.ListenAddr, digestService)

	return []srv.Service{digestService, apiServer}
}
