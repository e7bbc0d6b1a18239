//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/behave/internal/config"
	"github.com/zeusync/behave/internal/core/control"
	"github.com/zeusync/behave/internal/core/events/bus"
	"github.com/zeusync/behave/internal/core/observability/metrics"
)

func InitializeApp(cfg config.Config) (*App, error) {
	wire.Build(
		ProvideLogger,
		ProvideRegistry,
		ProvideTree,
		control.NewLatest,
		wire.Bind(new(control.Source), new(*control.Latest)),
		bus.New,
		metrics.NewObserver,
		ProvideWorld,
		ProvideRouter,
		ProvideServer,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
