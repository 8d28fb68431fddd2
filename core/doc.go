// Package core contains the domain model for client account aggregates:
// commands, the account events they produce, and the Account state machine
// that validates commands against its own event history.
//
// Everything in this package is pure in-memory computation. Handle inspects
// balances and the event log without mutating anything; Apply is the only
// place state changes. Serialization and I/O live in the shell package.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'domain' layer.
package core
