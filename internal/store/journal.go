package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunKind identifies the operation a journal entry records.
type RunKind string

const (
	KindGenerate RunKind = "generate"
	KindPrune    RunKind = "prune"
)

// Run is one journal entry.
type Run struct {
	ID      string         `json:"id"`
	Seq     int64          `json:"seq"`
	Kind    RunKind        `json:"kind"`
	Subject string         `json:"subject"`
	OK      bool           `json:"ok"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Time returns the creation time embedded in the run's UUIDv7.
// ok is false for IDs that carry no timestamp.
func (r Run) Time() (time.Time, bool) {
	id, err := uuid.Parse(r.ID)
	if err != nil || id.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec), true
}

// Record appends a run to the journal. seq is assigned as max(seq)+1 inside
// the insert, so entries are totally ordered.
func (s *Store) Record(ctx context.Context, kind RunKind, subject string, ok bool, detail map[string]any) (Run, error) {
	if detail == nil {
		detail = map[string]any{}
	}
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return Run{}, fmt.Errorf("record run: marshal detail: %w", err)
	}

	run := Run{
		ID:      s.newID(),
		Kind:    kind,
		Subject: subject,
		OK:      ok,
		Detail:  detail,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO runs (id, seq, kind, subject, ok, detail)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?)
		RETURNING seq
	`,
		run.ID,
		string(kind),
		subject,
		boolToInt(ok),
		string(detailJSON),
	).Scan(&run.Seq)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	return run, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 means all.
// An empty kind matches every kind.
func (s *Store) Runs(ctx context.Context, kind RunKind, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, kind, subject, ok, detail
		FROM runs
		WHERE ? = '' OR kind = ?
		ORDER BY seq DESC
		LIMIT ?
	`, string(kind), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			run        Run
			kindStr    string
			okInt      int
			detailJSON string
		)
		if err := rows.Scan(&run.ID, &run.Seq, &kindStr, &run.Subject, &okInt, &detailJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Kind = RunKind(kindStr)
		run.OK = okInt == 1
		if err := json.Unmarshal([]byte(detailJSON), &run.Detail); err != nil {
			return nil, fmt.Errorf("unmarshal run %s detail: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
