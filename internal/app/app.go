// Package app wires the order services from configuration.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/analytics"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/repository"
)

// Services is the wired application core.
type Services struct {
	Orders    *order.Service
	Analytics *analytics.Service

	repos *repository.Factory
}

// New creates all dependencies. It is the single wiring point for the tools.
func New(ctx context.Context, lg *zap.Logger, mp metric.MeterProvider, cfg *Config) (*Services, error) {
	rc, err := cfg.Repository()
	if err != nil {
		return nil, err
	}
	lg.Info("Initializing", zap.String("backend", string(rc.Backend)))

	repos, err := repository.NewFactory(rc, repository.WithMeterProvider(mp))
	if err != nil {
		return nil, errors.Wrap(err, "create repository factory")
	}
	orders := order.NewService(repos)

	return &Services{
		Orders:    orders,
		Analytics: analytics.NewService(orders),
		repos:     repos,
	}, nil
}

// Close releases storage connections.
func (s *Services) Close() error {
	return s.repos.Close()
}
