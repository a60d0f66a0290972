// Package audit provides the append-only audit log entries recorded for
// every committed business transition in the dispatch service: order
// lifecycle events, driver registrations, and driver block state changes.
package audit
