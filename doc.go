/*
Package gatesim is the core simulation engine of a digital-logic circuit
simulator: a discrete-event scheduler that propagates three-valued logic
signals through a directed graph of gates, supports hierarchical
subcircuits, and reports output transitions to observers in batches.

The engine owns a set of named graphs of gates and links. A host mutates
those graphs by submitting commands (add/remove a gate or link, bind a
subcircuit, drive an input, observe a graph for updates) and drives
simulated time forward by starting a tick driver or stepping it manually.
Gate behavior (what an "And" gate or a register actually computes) is
supplied by a Cell from a registry the host provides; see package cells
for a ready-made one.

This package deliberately does not parse netlists, render waveforms, or
persist anything — see package transport for one concrete way to expose
the command/update surface over a wire, and cmd/gatesimd for a minimal
reference host.
*/
package gatesim
