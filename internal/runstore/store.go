// Package runstore records face filter runs and their per-frame statistics
// in SQLite, so parameter sets can be compared across captures.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/facefilter/internal/facefilter"
	"github.com/banshee-data/facefilter/internal/timeutil"
)

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store wraps the run database.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Run is one filter configuration applied to a sequence of frames.
type Run struct {
	ID        string
	Source    string
	Params    facefilter.Params
	StartedAt time.Time
}

// Summary aggregates the frames of a run.
type Summary struct {
	RunID            string
	Frames           int
	MeanRetained     float64 // mean RetainedRatio over frames with input
	StdDevRetained   float64
	MeanSelected     float64 // mean directly selected segments per frame
	MeanPropagated   float64
	MaxDeepestLayer  int
	TotalInputPoints int64
}

// Open opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, clock: timeutil.RealClock{}}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	diagf("opened %s", path)
	return s, nil
}

// SetClock replaces the clock used for timestamps.
func (s *Store) SetClock(c timeutil.Clock) {
	s.clock = c
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun registers a new run and returns it with a fresh ID.
func (s *Store) CreateRun(ctx context.Context, source string, p facefilter.Params) (Run, error) {
	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return Run{}, fmt.Errorf("marshal params: %w", err)
	}
	run := Run{
		ID:        uuid.NewString(),
		Source:    source,
		Params:    p,
		StartedAt: s.clock.Now().UTC().Truncate(time.Millisecond),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO filter_runs (run_id, source, params_json, started_unix_ms) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, string(paramsJSON), run.StartedAt.UnixMilli())
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// GetRun loads a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, source, params_json, started_unix_ms FROM filter_runs WHERE run_id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, params_json, started_unix_ms FROM filter_runs ORDER BY started_unix_ms DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		paramsJSON string
		startedMs  int64
	)
	if err := sc.Scan(&run.ID, &run.Source, &paramsJSON, &startedMs); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
		return Run{}, fmt.Errorf("decode params of run %s: %w", run.ID, err)
	}
	run.StartedAt = time.UnixMilli(startedMs).UTC()
	return run, nil
}

// RecordFrame stores the statistics of one processed frame. Recording the
// same frame number twice replaces the earlier row.
func (s *Store) RecordFrame(ctx context.Context, runID string, st facefilter.Stats) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO filter_frames (
			run_id, frame, width, height, input_points, retained_points,
			selected_segments, propagated_segments, deepest_layer, recorded_unix_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, int64(st.Frame), st.Width, st.Height, st.InputPoints, st.RetainedPoints,
		st.SelectedSegments, st.PropagatedSegments, st.DeepestLayer, s.clock.Now().UnixMilli())
	if err != nil {
		opsf("record frame %d of run %s: %v", st.Frame, runID, err)
		return fmt.Errorf("insert frame: %w", err)
	}
	return nil
}

// ListFrames returns the recorded frames of a run in frame order.
func (s *Store) ListFrames(ctx context.Context, runID string) ([]facefilter.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT frame, width, height, input_points, retained_points,
		       selected_segments, propagated_segments, deepest_layer
		FROM filter_frames WHERE run_id = ? ORDER BY frame`, runID)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var frames []facefilter.Stats
	for rows.Next() {
		var (
			st    facefilter.Stats
			frame int64
		)
		if err := rows.Scan(&frame, &st.Width, &st.Height, &st.InputPoints, &st.RetainedPoints,
			&st.SelectedSegments, &st.PropagatedSegments, &st.DeepestLayer); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		st.Frame = uint64(frame)
		frames = append(frames, st)
	}
	return frames, rows.Err()
}

// Summarize aggregates the frames of a run.
func (s *Store) Summarize(ctx context.Context, runID string) (Summary, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return Summary{}, err
	}
	frames, err := s.ListFrames(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(runID, frames), nil
}

func summarize(runID string, frames []facefilter.Stats) Summary {
	sum := Summary{RunID: runID, Frames: len(frames)}
	if len(frames) == 0 {
		return sum
	}

	var ratios []float64
	selected := make([]float64, len(frames))
	propagated := make([]float64, len(frames))
	for i, f := range frames {
		if f.InputPoints > 0 {
			ratios = append(ratios, f.RetainedRatio())
		}
		selected[i] = float64(f.SelectedSegments)
		propagated[i] = float64(f.PropagatedSegments)
		if f.DeepestLayer > sum.MaxDeepestLayer {
			sum.MaxDeepestLayer = f.DeepestLayer
		}
		sum.TotalInputPoints += int64(f.InputPoints)
	}

	if len(ratios) > 0 {
		sum.MeanRetained, sum.StdDevRetained = stat.MeanStdDev(ratios, nil)
		if len(ratios) == 1 {
			sum.StdDevRetained = 0
		}
	}
	sum.MeanSelected = stat.Mean(selected, nil)
	sum.MeanPropagated = stat.Mean(propagated, nil)
	return sum
}
