// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wblib provides a bus protocol adapter that bridges a bus
// initiator and a bus target differing in handshake discipline (Classic
// vs Pipelined) and/or address granularity (Byte vs Word).
//
// The adapter translates transactions without altering their order,
// count or payload. It comes in two presentations with identical
// behavior: a bundled form (Bridge, operating on Req/Rsp records) and a
// discrete form (Adapter, a part with individual signal lines).
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package wblib

import (
	"github.com/pkg/errors"
)

// Mode is the handshake discipline of a bus interface.
//
type Mode int

// Handshake disciplines.
const (
	// Classic allows at most one outstanding, unacknowledged
	// transaction at a time.
	Classic Mode = iota
	// Pipelined allows the initiator to issue further strobes before
	// the current one is acknowledged, subject to the target's stall
	// signal.
	Pipelined
)

func (m Mode) String() string {
	switch m {
	case Classic:
		return "classic"
	case Pipelined:
		return "pipelined"
	}
	return "invalid"
}

// Granularity determines whether a bus address counts individual bytes
// or whole data words.
//
type Granularity int

// Address granularities.
const (
	Byte Granularity = iota
	Word
)

func (g Granularity) String() string {
	switch g {
	case Byte:
		return "byte"
	case Word:
		return "word"
	}
	return "invalid"
}

// Config is the elaboration-time configuration of a bus adapter. It is
// fixed at construction and cannot be changed at run time.
//
type Config struct {
	InitiatorMode        Mode
	TargetMode           Mode
	InitiatorGranularity Granularity
	TargetGranularity    Granularity
	// AddrBits is the address width of both ports, 1 to 64.
	AddrBits int
	// DataBits is the data width of both ports: 8, 16, 32 or 64.
	DataBits int
}

// Validate checks the configuration. An unsupported data width is the
// adapter's only failure mode, and it is reported here, at elaboration;
// a validated adapter has no runtime faults of its own.
//
func (cfg Config) Validate() error {
	if _, err := OffsetBits(cfg.DataBits); err != nil {
		return err
	}
	if cfg.AddrBits < 1 || cfg.AddrBits > 64 {
		return errors.Errorf("unsupported address width %d (must be 1 to 64)", cfg.AddrBits)
	}
	for _, m := range []Mode{cfg.InitiatorMode, cfg.TargetMode} {
		if m != Classic && m != Pipelined {
			return errors.Errorf("invalid handshake mode %d", int(m))
		}
	}
	for _, g := range []Granularity{cfg.InitiatorGranularity, cfg.TargetGranularity} {
		if g != Byte && g != Word {
			return errors.Errorf("invalid address granularity %d", int(g))
		}
	}
	return nil
}

// OffsetBits returns the number of low-order byte-offset bits implied by
// a data width: 0 for 8-bit data, 1 for 16, 2 for 32 and 3 for 64. Any
// other width is a configuration error.
//
func OffsetBits(dataBits int) (int, error) {
	switch dataBits {
	case 8:
		return 0, nil
	case 16:
		return 1, nil
	case 32:
		return 2, nil
	case 64:
		return 3, nil
	}
	return 0, errors.Errorf("unsupported data width %d (must be 8, 16, 32 or 64)", dataBits)
}
