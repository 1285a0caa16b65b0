// Package store is the SQLite journal of sharpglue runs.
//
// Every `new` and `prune` invocation of the CLI appends one row to the runs
// table:
//   - id: UUIDv7, so the creation time can be recovered from the ID
//   - seq: logical clock, max(seq)+1 at insert time
//   - kind: "generate" or "prune"
//   - subject: descriptor path or registry file
//   - ok: whether the run succeeded
//   - detail: JSON object with run-specific fields
//
// History queries order by seq, never by wall time.
//
// The library packages (project, origin) never touch the journal; it belongs
// to the command layer.
package store
