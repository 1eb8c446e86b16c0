package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/kommissar/internal/config"
	"github.com/sandevgo/kommissar/internal/promptgen"
	"github.com/sandevgo/kommissar/internal/providers/history"
	"github.com/sandevgo/kommissar/internal/providers/stability"
	"github.com/sandevgo/kommissar/internal/service/digest"
	"github.com/sandevgo/kommissar/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	dateFlag    string
	noImages    bool
	scenePrompt bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the digest for today (or a given date) once",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		month, day, err := resolveDate(dateFlag)
		if err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		source := history.NewClient(appCfg.HistoryBaseURL)

		var service *digest.Service
		if noImages {
			service = digest.NewService(source, nil, promptBuilder(appCfg))
		} else {
			stabilityCfg := config.NewStabilityConfig(ctx)
			images := stability.NewClient(stabilityCfg.BaseURL, stabilityCfg.APIKey, stabilityCfg.Engine)
			service = digest.NewService(source, images, promptBuilder(appCfg))
		}

		if err := service.Load(ctx, month, day); err != nil {
			return err
		}
		if !noImages {
			service.GenerateImages(ctx)
		}

		fmt.Print(ui.RenderDigest(service.Snapshot()))
		return nil
	},
}

func init() {
	todayCmd.Flags().StringVar(&dateFlag, "date", "", "month/day to fetch instead of today, e.g. 11/7")
	todayCmd.Flags().BoolVar(&noImages, "no-images", false, "skip image generation")
	todayCmd.Flags().BoolVar(&scenePrompt, "scene-prompt", false, "use the flat scene-context prompt builder")
	rootCmd.AddCommand(todayCmd)
}

func promptBuilder(appCfg *config.AppConfig) digest.PromptBuilder {
	if scenePrompt || appCfg.ScenePrompt {
		return promptgen.ScenePrompt
	}
	return digest.StructuredPrompt
}

func resolveDate(flag string) (month, day int, err error) {
	if flag == "" {
		now := time.Now()
		return int(now.Month()), now.Day(), nil
	}

	parts := strings.SplitN(flag, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid date %q, expected month/day", flag)
	}
	month, err = strconv.Atoi(parts[0])
	if err == nil {
		day, err = strconv.Atoi(parts[1])
	}
	if err != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid date %q, expected month/day", flag)
	}
	return month, day, nil
}
