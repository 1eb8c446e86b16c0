package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/kommissar/pkg/log"
)

type StabilityConfig struct {
	APIKey  string `env:"STABILITY_API_KEY,required,notEmpty"`
	BaseURL string `env:"STABILITY_BASE_URL" envDefault:"https://api.stability.ai"`
	Engine  string `env:"STABILITY_ENGINE" envDefault:"stable-diffusion-xl-1024-v1-0"`
}

func NewStabilityConfig(ctx context.Context) *StabilityConfig {
	c := &StabilityConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Stability config")
	}
	return c
}
