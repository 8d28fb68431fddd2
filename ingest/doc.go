// Package ingest sequences a stream of commands into the correct account
// aggregates and exposes the final per-client balances.
//
// Router is the single-threaded baseline: one aggregate table, commands
// processed strictly in arrival order. Sharded fans the stream out to worker
// goroutines by client id for throughput; each client's sub-stream is still
// processed in original order by exactly one worker, because dispute, resolve
// and chargeback lookups depend on earlier events in that client's log.
//
// Observability is wired through small dependency-free interfaces; adapters
// live in the shell package.
package ingest
