package collector

import (
	"fmt"

	"go.uber.org/zap"

	"tagdraw/internal/config"
	"tagdraw/internal/domain"
)

// New selects the collector implementation from configuration.
func New(log *zap.Logger) (domain.Collector, error) {
	mode := config.CollectorMode()

	switch mode {
	case "danbooru":
		login, key := config.Credentials()
		return NewClient(Options{
			Base:         config.APIBase(),
			UserAgent:    config.UserAgent(),
			Login:        login,
			APIKey:       key,
			Timeout:      config.APITimeout(),
			RateInterval: config.RateInterval(),
			Logger:       log,
		}), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown collector.mode: %s (use 'danbooru' or 'mock')", mode)
	}
}
