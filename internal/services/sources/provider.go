package sources

import (
	"context"
	"fmt"

	"DugoutEdge/internal/engine"
	"DugoutEdge/pkg/config"
	"DugoutEdge/pkg/logger"
)

// Provider loads one day's source payloads. Implementations treat a missing
// payload as an empty one; the engine's source cascade handles degradation.
type Provider interface {
	Daily(ctx context.Context, date string) (engine.Inputs, error)
}

// New selects a provider from configuration.
func New(cfg *config.Config, log *logger.Logger) (Provider, error) {
	switch cfg.Sources.Mode {
	case "file":
		return NewFileProvider(cfg.Sources.DataDir, log), nil
	case "http":
		return NewHTTPProvider(cfg, log), nil
	}
	return nil, fmt.Errorf("unknown sources mode %q", cfg.Sources.Mode)
}
