// Package shell contains the I/O adapters around the pure core and ingest
// packages: the CSV wire codec for command streams and balance snapshots,
// the JSONL audit sink with its event envelopes, and small adapters that
// implement the ingest observability interfaces.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'infrastructure' or 'adapter' layer.
package shell
