// Package runstore persists selection runs in SQLite so a run can be listed,
// reloaded and re-verified later. Selected ids and coverage counts round
// trip exactly.
package runstore
