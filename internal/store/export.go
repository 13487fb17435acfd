package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ExportSnapshotsJSONL writes every snapshot of a run to w as one JSON
// object per line, in day-then-sequence order. Lines round-trip
// through antibody.FromSnapshot without clamping.
func ExportSnapshotsJSONL(ctx context.Context, s RunStore, runID string, w io.Writer) (int, error) {
	snaps, err := s.GetSnapshots(ctx, runID)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, snap := range snaps {
		if err := enc.Encode(snap); err != nil {
			return 0, fmt.Errorf("encoding snapshot day %d: %w", snap.Day, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flushing export: %w", err)
	}
	return len(snaps), nil
}
