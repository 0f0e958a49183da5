package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenariosAreValid(t *testing.T) {
	f, err := loadScenarios("")
	require.NoError(t, err)
	assert.Equal(t, 5, f.Repeats)
	require.Len(t, f.Scenarios, 6)
	assert.Equal(t, scenario{
		Name:       "simple component",
		Width:      10,
		Layers:     5,
		Sources:    2,
		Static:     1,
		Read:       0.2,
		Iterations: 600000,
	}, f.Scenarios[0])
	assert.Equal(t, "10x5 2 sources read 20.00%", f.Scenarios[0].title())
	assert.Equal(t, "100x15 6 sources dynamic", f.Scenarios[5].title())
}

func TestLoadScenariosFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: tiny
    width: 3
    layers: 2
    sources: 2
    static: 0.5
    read: 1
    iterations: 10
`), 0o644))

	f, err := loadScenarios(path)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Repeats, "repeats default")
	require.Len(t, f.Scenarios, 1)
	assert.Equal(t, "tiny", f.Scenarios[0].Name)

	_, err = loadScenarios(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScenarioValidationCollectsEveryProblem(t *testing.T) {
	_, err := parseScenarios([]byte(`
repeats: 0
scenarios:
  - name: broken
    width: 0
    layers: 1
    sources: 1
    static: 1.5
    read: 0
    iterations: 0
  - name: broken
    width: 4
    layers: 3
    sources: 1
    static: 0.5
    read: 1
    iterations: 1
  - width: 1
    layers: 2
    sources: 1
    static: 1
    read: 1
    iterations: 1
`))
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	// repeats, broken scenario, duplicate name, dynamic with one source,
	// missing name
	assert.Len(t, merr.Errors, 5)
	for _, want := range []string{
		"repeats must be positive",
		"width must be positive",
		"layers must be at least 2",
		"sources must be within [1, width]",
		"static must be within [0, 1]",
		"read must be within (0, 1]",
		"iterations must be positive",
		`duplicate name "broken"`,
		"dynamic nodes need at least 2 sources",
		"scenario 2: missing name",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseScenariosRejectsBadYAML(t *testing.T) {
	_, err := parseScenarios([]byte("scenarios: [\n"))
	assert.ErrorContains(t, err, "parsing scenarios")
}
