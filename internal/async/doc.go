// Package async holds the few concurrency primitives the editor engine needs.
//
// The engine is single-threaded: every state transition happens on the UI
// thread. Work that runs elsewhere (timer callbacks, network fetches) hands
// its result back through a Poster, which marshals a function onto that
// thread.
//
//   - Loop: a Poster backed by a channel, drained by the host's event loop
//   - Scheduler: time.AfterFunc behind an interface, with a manual clock
//     for tests
//   - IdleTimer: a reset-not-queued quiet-period timer
//   - Flight: a single-flight cancellable task where starting a new task
//     supersedes the previous one and stale results are dropped
package async
