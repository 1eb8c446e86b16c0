package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/kommissar/pkg/log"
)

type AppConfig struct {
	ListenAddr string `env:"KOMMISSAR_LISTEN_ADDR" envDefault:":8080"`

	// Events API
	HistoryBaseURL string `env:"HISTORY_BASE_URL" envDefault:"https://history.muffinlabs.com/date"`

	// Prompt mode: the flat scene-context prompt instead of the
	// structured era/style prompt.
	ScenePrompt bool `env:"KOMMISSAR_SCENE_PROMPT" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}
