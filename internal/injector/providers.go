// Package injector assembles the shipsim application graph.
package injector

import (
	"net/http"

	"github.com/zeusync/behave/internal/config"
	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/control"
	"github.com/zeusync/behave/internal/core/events/bus"
	"github.com/zeusync/behave/internal/core/loader"
	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/core/observability/metrics"
	"github.com/zeusync/behave/internal/core/ship"
	"github.com/zeusync/behave/internal/core/sim"
	"github.com/zeusync/behave/internal/server"
)

// App is everything a command needs to run a simulation.
type App struct {
	Config  config.Config
	Logger  *log.Logger
	Input   *control.Latest
	Bus     bus.Bus
	Metrics *metrics.Observer
	World   *sim.World
	Server  *server.Server
}

func ProvideLogger(cfg config.Config) *log.Logger {
	return log.New(cfg.Level())
}

func ProvideRegistry(cfg config.Config, logger *log.Logger) (*bt.Registry[*ship.Context], error) {
	opts := []bt.Option{bt.WithLogger(logger)}
	if cfg.Tree.StrictRegistry {
		opts = append(opts, bt.WithStrictRegistration())
	}
	return ship.NewRegistry(opts...)
}

// ProvideTree loads the configured tree, or the built-in one when no path is set.
func ProvideTree(cfg config.Config) (*bt.Descriptor, error) {
	if cfg.Tree.Path == "" {
		return ship.DefaultTree()
	}
	return loader.LoadFile(cfg.Tree.Path, cfg.Tree.Format)
}

func ProvideWorld(
	cfg config.Config,
	reg *bt.Registry[*ship.Context],
	desc *bt.Descriptor,
	input control.Source,
	observer *metrics.Observer,
	events bus.Bus,
	logger *log.Logger,
) (*sim.World, error) {
	return sim.NewWorld(cfg.World(), reg, desc, input,
		sim.WithLogger(logger),
		sim.WithBus(events),
		sim.WithTreeOptions(bt.WithObserver(observer)),
	)
}

func ProvideRouter(world *sim.World, input *control.Latest, observer *metrics.Observer, logger *log.Logger) http.Handler {
	return server.NewRouter(server.Routes{
		World:   world,
		Control: control.NewHandler(input, logger),
		Metrics: observer.Handler(),
	}, logger)
}

func ProvideServer(cfg config.Config, handler http.Handler, logger *log.Logger) (*server.Server, error) {
	sc := server.DefaultConfig()
	sc.Addr = cfg.Server.Addr
	return server.New(sc, handler, logger)
}
