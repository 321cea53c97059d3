/*
Package socsim provides reusable digital-logic building blocks for
system-on-chip integration, together with a small simulator to run them.

The simulator models any number of independently clocked, independently
reset domains over a single discrete step counter. Components are built
from parts wired together by name, in the manner of a hardware
description language, and the library ships parts for the hard
integration problems: moving single-cycle events safely between clock
domains (package cdclib) and bridging bus interfaces that differ in
handshake discipline or address granularity (package wblib).

*/
package socsim
