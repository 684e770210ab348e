package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

const cropAllJSON = `{"query":{"operator_crop":{"region":{"p_min":{"x":0,"y":0},"p_max":{"x":5,"y":5}}}}}`

// seedDatabase creates a SQLite database with a small fixed dataset:
// ids 1,2,3,5 sit inside (0,0)-(5,5), id 4 outside at (9,9).
func seedDatabase(t *testing.T, dbPath string) {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{DSN: dbPath})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	pts := []inspection.Point{
		{ID: 1, GroupID: 1, X: 1, Y: 1, Category: 0},
		{ID: 2, GroupID: 1, X: 2, Y: 2, Category: 0},
		{ID: 3, GroupID: 2, X: 3, Y: 3, Category: 1},
		{ID: 4, GroupID: 2, X: 9, Y: 9, Category: 1},
		{ID: 5, GroupID: 3, X: 4, Y: 4, Category: 0},
	}
	if _, err := st.InsertPoints(ctx, pts); err != nil {
		t.Fatalf("seed points: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}

func TestQueryCommand_CropToStdout(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	out, _, err := runRoot(t, "-d", db, "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", out)
}

func TestQueryCommand_WritesFile(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)
	outPath := filepath.Join(t.TempDir(), "result.txt")

	out, _, err := runRoot(t, "-d", db, "query", "--query-json", cropAllJSON, "--output", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 points to "+outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", string(content))
}

func TestQueryCommand_DefaultOutputFile(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	_, _, err := runRoot(t, "-d", db, "query", "--query-json", cropAllJSON)
	require.NoError(t, err)

	content, err := os.ReadFile("output.txt")
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", string(content))
}

func TestQueryCommand_QueryFromFile(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)
	queryPath := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, os.WriteFile(queryPath, []byte(cropAllJSON), 0o644))

	out, _, err := runRoot(t, "-d", db, "query", "--query", queryPath, "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", out)
}

func TestQueryCommand_And(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	andJSON := `{"query":{"operator_and":[
		{"operator_crop":{"region":{"p_min":{"x":0,"y":0},"p_max":{"x":5,"y":5}}}},
		{"operator_crop":{"region":{"p_min":{"x":2.5,"y":2.5},"p_max":{"x":10,"y":10}}}}
	]}}`

	out, _, err := runRoot(t, "-d", db, "query", "--query-json", andJSON, "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "3 3\n4 4\n", out)
}

func TestQueryCommand_EmptyAnd(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)
	outPath := filepath.Join(t.TempDir(), "result.txt")

	out, _, err := runRoot(t, "-d", db, "query", "--query-json", `{"query":{"operator_and":[]}}`, "--output", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 0 points")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Empty(t, string(content), "empty result still creates the output file")
}

func TestQueryCommand_ParallelMatchesSequential(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	orJSON := `{"query":{"operator_or":[
		{"operator_crop":{"region":{"p_min":{"x":0,"y":0},"p_max":{"x":2,"y":2}}}},
		{"operator_crop":{"region":{"p_min":{"x":3,"y":3},"p_max":{"x":10,"y":10}}}}
	]}}`

	sequential, _, err := runRoot(t, "-d", db, "query", "--query-json", orJSON, "--output", "-")
	require.NoError(t, err)

	parallel, _, err := runRoot(t, "-d", db, "query", "--query-json", orJSON, "--output", "-", "--parallel", "4")
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestQueryCommand_MalformedQuery(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")

	_, _, err := runRoot(t, "-d", db, "query", "--query-json", `{"query":{}}`, "--output", "-")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "malformed query:"), "got %q", err.Error())
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestQueryCommand_QueryFileMissing(t *testing.T) {
	isolate(t)

	_, _, err := runRoot(t, "query", "--query", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "io:"), "got %q", err.Error())
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestQueryCommand_UnknownDriver(t *testing.T) {
	isolate(t)

	_, _, err := runRoot(t, "--driver", "oracle", "query", "--query-json", cropAllJSON)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "store:"), "got %q", err.Error())
	assert.True(t, store.IsStoreError(err))
}

func TestQueryCommand_RequiresQuery(t *testing.T) {
	isolate(t)

	_, _, err := runRoot(t, "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of --query or --query-json is required")
}

func TestQueryCommand_MutuallyExclusiveQueryFlags(t *testing.T) {
	isolate(t)

	_, _, err := runRoot(t, "query", "--query", "q.json", "--query-json", cropAllJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestQueryCommand_EnvDatabaseOverride(t *testing.T) {
	isolate(t)
	envDB := filepath.Join(t.TempDir(), "env.db")
	seedDatabase(t, envDB)
	t.Setenv("INSPECTDB_DATABASE_DSN", envDB)

	out, _, err := runRoot(t, "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", out)
}

func TestQueryCommand_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	flagDB := filepath.Join(dir, "flag.db")
	seedDatabase(t, flagDB)
	t.Setenv("INSPECTDB_DATABASE_DSN", filepath.Join(dir, "env.db"))

	out, _, err := runRoot(t, "-d", flagDB, "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", out, "the --database flag should beat INSPECTDB_DATABASE_DSN")
}

func TestQueryCommand_ConfigFileDatabase(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, "inspectdb.yaml"),
		[]byte("database:\n  dsn: "+db+"\n"), 0o644))

	out, _, err := runRoot(t, "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "1 1\n2 2\n3 3\n4 4\n", out)
}

func TestQueryCommand_LogsQueryToken(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	_, errOut, err := runRoot(t, "-d", db, "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "query_token=")
	assert.Contains(t, errOut, "query evaluated")
}

func TestQueryCommand_VerboseEnablesDebugLogs(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	_, quiet, err := runRoot(t, "-d", db, "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.NotContains(t, quiet, "crop evaluated")

	_, verbose, err := runRoot(t, "-d", db, "-v", "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, verbose, "crop evaluated")
}

func TestQueryCommand_JSONLogFormat(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	seedDatabase(t, db)

	_, errOut, err := runRoot(t, "-d", db, "--log-format", "json", "query", "--query-json", cropAllJSON, "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"query_token":"`)
}

func TestLoadThenQuery(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "points.db")
	dir := writeLoadDataDir(t, "0.5 2\n3.25 2\n2 1\n", "0\n1\n0\n", "10\n10\n20\n")

	_, _, err := runRoot(t, "-d", db, "load", "--data-dir", dir)
	require.NoError(t, err)

	out, _, err := runRoot(t, "-d", db, "query", "--query-json",
		`{"query":{"operator_crop":{"region":{"p_min":{"x":0,"y":0},"p_max":{"x":10,"y":10}}}}}`,
		"--output", "-")
	require.NoError(t, err)
	assert.Equal(t, "2 1\n0.5 2\n3.25 2\n", out)
}
