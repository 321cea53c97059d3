// socsim-demo relays events between two free-running clock domains and
// measures their period ratio, logging the handshake as it happens.
package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/cdclib"
)

func main() {
	cfgPath := flag.String("config", "", "TOML scenario file (optional)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "socsim-demo").Logger()

	cfg := defaultScenario()
	if *cfgPath != "" {
		var err error
		cfg, err = loadScenario(*cfgPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("bad scenario")
		}
	}
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)

	if err := run(logger, cfg); err != nil {
		logger.Fatal().Err(err).Msg("simulation failed")
	}
}

func run(logger zerolog.Logger, cfg scenario) error {
	dIn := socsim.NewDomain("in", cfg.InPeriod, 0)
	dOut := socsim.NewDomain("out", cfg.OutPeriod, 0)

	relay, err := cdclib.EventRelay(dIn, dOut)
	if err != nil {
		return err
	}
	meter, err := cdclib.FreqMeter(dIn, dOut, cfg.CountBits, cfg.Window)
	if err != nil {
		return err
	}

	var (
		evIn     bool
		ready    bool
		relayed  int
		prevOut  bool
		ratio    int64
		prevVald bool
	)
	hi := strconv.Itoa(cfg.CountBits - 1)
	c, err := socsim.NewCircuit(0, socsim.Domains{dIn, dOut}, socsim.Parts{
		cdclib.Input(func() bool { return evIn })("out=ev"),
		relay("event_in=ev, ready=rdy, event_out=pulse"),
		cdclib.Output(func(v bool) { ready = v })("in=rdy"),
		cdclib.Output(func(v bool) {
			if v && !prevOut {
				relayed++
			}
			prevOut = v
		})("in=pulse"),
		meter("count[0.."+hi+"]=cnt[0.."+hi+"], valid=valid"),
		cdclib.OutputN(cfg.CountBits, func(v int64) { ratio = v })("in[0.."+hi+"]=cnt[0.."+hi+"]"),
		cdclib.Output(func(v bool) { prevVald = v })("in=valid"),
		cdclib.Probe(logger, "ready")("in=rdy"),
		cdclib.Probe(logger, "event_out")("in=pulse"),
	}, socsim.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Dispose()

	for i := 0; i < cfg.Events; i++ {
		for !ready {
			c.Tick(dIn)
		}
		evIn = true
		c.Tick(dIn)
		evIn = false
		logger.Info().Int("event", i+1).Uint64("step", c.Steps()).Msg("event sent")
	}
	for !ready {
		c.Tick(dIn)
	}

	// let the frequency meter produce a couple of settled measurements.
	for i := 0; i < 4; i++ {
		for !prevVald {
			c.Tick(dOut)
		}
		for prevVald {
			c.Tick(dOut)
		}
	}

	logger.Info().
		Int("events_sent", cfg.Events).
		Int("events_relayed", relayed).
		Int64("ticks_per_window", ratio).
		Uint64("steps", c.Steps()).
		Msg("done")
	return nil
}
