/*
Package sigsim simulates digital logic circuits as networks of shared boolean
signals connected by computational elements.

A Signal is a lock-guarded boolean cell shared by reference between every
element that reads or writes it. Elements (diodes, triodes and logic gates
from the siglib package) recompute their outputs from their current inputs on
each evaluation step. Propagation is driven either by a per-element busy-poll
loop (Run/Start), mirroring a physical gate that continuously re-evaluates,
or by an Engine that reacts to signal changes through a work queue drained by
a worker pool.
*/
package sigsim
