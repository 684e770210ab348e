package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioSuite runs every checked-in scenario end to end. The suite
// doubles as executable documentation of the query semantics: region
// inclusivity, constraint combination, set algebra, ordering, and parse
// failures each have a scenario here.
func TestScenarioSuite(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, "load %s", path)

		// Golden fixtures are looked up by scenario name, so the file
		// name must match it.
		base := strings.TrimSuffix(filepath.Base(path), ".yaml")
		require.Equal(t, base, scenario.Name, "scenario name must match its file name: %s", path)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

// TestScenarioSuiteReplay runs one scenario twice and expects identical
// results: fresh in-memory databases and sequential evaluation leave no
// state behind to drift on.
func TestScenarioSuiteReplay(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/or-union-dedup.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	require.True(t, first.Pass, "errors: %v", first.Errors)
	assert.Equal(t, first.IDs, second.IDs)
	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, first.Pass, second.Pass)
}
