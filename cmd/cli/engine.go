package cli

import (
	"github.com/anstrom/portsim/internal/config"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/scanning"
)

// newEngine builds a scan engine from the engine section of cfg. recorder
// may be nil.
func newEngine(cfg *config.Config, recorder scanning.Recorder, logger *logging.Logger) *scanning.Engine {
	opts := []scanning.Option{
		scanning.WithInterval(cfg.Engine.TickInterval),
		scanning.WithParameters(cfg.Parameters()),
		scanning.WithRandom(scanning.NewRandomSource(cfg.Engine.Seed)),
		scanning.WithLogger(logger.WithComponent("engine")),
	}
	if recorder != nil {
		opts = append(opts, scanning.WithRecorder(recorder))
	}
	return scanning.NewEngine(opts...)
}
