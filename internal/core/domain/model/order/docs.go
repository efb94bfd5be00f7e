// Package order implements the Order aggregate and its status state machine.
//
// An order starts CREATED and can move once, either to COMPLETED or to
// CANCELLED. Both are terminal. Status.CanTransitionTo is the pure
// transition rule; Order.TransitionTo applies it and refreshes updatedAt.
// Illegal moves fail with *InvalidTransitionError carrying the (From, To) pair.
//
// TotalValue is never stored. It is price × quantity rounded to two places.
package order
