package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// scenario is the runtime configuration of the demo.
type scenario struct {
	InPeriod  uint // clock period of the producing domain, in steps
	OutPeriod uint // clock period of the consuming domain, in steps
	Events    int  // number of events to relay
	Window    uint // frequency meter gate window, in producer ticks
	CountBits int  // frequency meter counter width
	Debug     bool // log every probed signal transition
}

func defaultScenario() scenario {
	return scenario{
		InPeriod:  6,
		OutPeriod: 14,
		Events:    5,
		Window:    8,
		CountBits: 16,
	}
}

// scenario.toml key mapping.
type fileConfig struct {
	InPeriod  int  `toml:"in_period"`
	OutPeriod int  `toml:"out_period"`
	Events    int  `toml:"events"`
	Window    int  `toml:"gate_window"`
	CountBits int  `toml:"count_bits"`
	Debug     bool `toml:"debug"`
}

// loadScenario loads a TOML scenario file over the defaults. Keys absent
// from the file keep their default values.
func loadScenario(path string) (scenario, error) {
	cfg := defaultScenario()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return scenario{}, errors.Wrap(err, "load scenario")
	}
	if meta.IsDefined("in_period") {
		cfg.InPeriod = uint(raw.InPeriod)
	}
	if meta.IsDefined("out_period") {
		cfg.OutPeriod = uint(raw.OutPeriod)
	}
	if meta.IsDefined("events") {
		cfg.Events = raw.Events
	}
	if meta.IsDefined("gate_window") {
		cfg.Window = uint(raw.Window)
	}
	if meta.IsDefined("count_bits") {
		cfg.CountBits = raw.CountBits
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	for _, p := range []uint{cfg.InPeriod, cfg.OutPeriod} {
		if p < 2 || p%2 != 0 {
			return scenario{}, errors.Errorf("load scenario: clock period must be even and >= 2, got %d", p)
		}
	}
	if cfg.Events < 1 {
		return scenario{}, errors.Errorf("load scenario: events must be at least 1, got %d", cfg.Events)
	}
	if cfg.Window < 1 {
		return scenario{}, errors.New("load scenario: gate window must be at least 1 tick")
	}
	if cfg.CountBits < 1 || cfg.CountBits > 63 {
		return scenario{}, errors.Errorf("load scenario: count width must be 1 to 63, got %d", cfg.CountBits)
	}
	return cfg, nil
}
