// Package runlog keeps a local history of unification runs.
//
// Each completed run is recorded with its counters and every residual issue
// the validation pass reported, backed by a small SQLite database. The
// history exists for auditing: when an id shows up wrong weeks later, the run
// that left it behind can be found without re-running the tool.
package runlog
