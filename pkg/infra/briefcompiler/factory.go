package briefcompiler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/config"
	"github.com/arbetsytan/arbetsytan/pkg/infra/bedrock"
)

// NewProvider selects the configured brief engine. Unknown provider
// names fail startup instead of silently defaulting.
func NewProvider(ctx context.Context, cfg config.BriefConfig, logger *logrus.Logger) (Provider, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case "local":
		if cfg.URL == "" {
			return nil, fmt.Errorf("brief engine url is required for the local provider")
		}
		return NewLocalProvider(logger, cfg.URL, timeout), nil
	case "bedrock":
		client, err := bedrock.NewClient(ctx, bedrock.Config{
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			RoleARN:   cfg.AWS.RoleARN,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("bedrock brief provider: %w", err)
		}
		if cfg.AWS.ModelID == "" {
			return nil, fmt.Errorf("bedrock model id is required")
		}
		return NewBedrockProvider(client, cfg.AWS.ModelID, logger), nil
	default:
		return nil, fmt.Errorf("unknown brief provider: %q", cfg.Provider)
	}
}
