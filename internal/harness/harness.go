package harness

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Kangyi02/DaoAI-assessment/internal/eval"
	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
	"github.com/Kangyi02/DaoAI-assessment/internal/output"
	"github.com/Kangyi02/DaoAI-assessment/internal/query"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

// Run executes a scenario and returns its result.
//
// Each scenario runs against a fresh in-memory SQLite database, so runs
// are isolated and repeatable. A non-nil error means the harness itself
// could not execute the scenario; expectation failures land in the result.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{DSN: ":memory:"})
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	defer st.Close()

	if err := seedPoints(ctx, st, scenario.Points); err != nil {
		return nil, fmt.Errorf("seed points: %w", err)
	}

	result := NewResult()

	rs, err := evaluate(ctx, st, scenario.Query)
	if err != nil {
		checkFailure(scenario, result, err)
		return result, nil
	}
	if scenario.Expect.Error != "" {
		result.AddError("expected a failure containing %q, query selected %d points",
			scenario.Expect.Error, rs.Len())
		return result, nil
	}

	result.IDs = rs.IDs()
	result.Lines, err = renderLines(rs)
	if err != nil {
		return nil, fmt.Errorf("render output: %w", err)
	}

	if scenario.Expect.IDs != nil && !slices.Equal(result.IDs, scenario.Expect.IDs) {
		result.AddError("ids: got %v, want %v", result.IDs, scenario.Expect.IDs)
	}
	if scenario.Expect.Lines != nil && !slices.Equal(result.Lines, scenario.Expect.Lines) {
		result.AddError("lines: got %q, want %q", result.Lines, scenario.Expect.Lines)
	}

	return result, nil
}

// seedPoints inserts the scenario's dataset.
func seedPoints(ctx context.Context, st store.Store, specs []PointSpec) error {
	if len(specs) == 0 {
		return nil
	}
	pts := make([]inspection.Point, len(specs))
	for i, p := range specs {
		pts[i] = inspection.Point{
			ID:       p.ID,
			GroupID:  p.Group,
			X:        p.X,
			Y:        p.Y,
			Category: p.Category,
		}
	}
	_, err := st.InsertPoints(ctx, pts)
	return err
}

// evaluate parses the query document and runs it against st.
func evaluate(ctx context.Context, st store.Store, queryJSON string) (*eval.ResultSet, error) {
	root, err := query.ParseString(queryJSON)
	if err != nil {
		return nil, err
	}
	return eval.New(st).Evaluate(ctx, root)
}

// checkFailure compares a run failure against the scenario's expectation.
func checkFailure(scenario *Scenario, result *Result, err error) {
	if scenario.Expect.Error == "" {
		result.AddError("query failed: %v", err)
		return
	}
	if !strings.Contains(err.Error(), scenario.Expect.Error) {
		result.AddError("failure message: got %q, want a substring %q",
			err.Error(), scenario.Expect.Error)
	}
}

// renderLines renders the finalized result exactly the way the CLI writes
// its output file, split into lines.
func renderLines(rs *eval.ResultSet) ([]string, error) {
	var buf bytes.Buffer
	if err := output.WritePoints(&buf, output.Finalize(rs)); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"), nil
}
