// Package cells is a library of reusable gatesim.Cell implementations:
// the logic, arithmetic, and storage parts a host wires into graphs via
// Engine.AddGate, plus the special non-evaluated I/O gates a host uses
// to drive and observe a circuit from outside.
//
// This mirrors hwlib's role for hwsim: the engine itself knows nothing
// about what a "Nand" or a "DFF" is, only the Cell contract (see
// gatesim.Cell) — this package is the external collaborator that
// supplies concrete cell types.
package cells
