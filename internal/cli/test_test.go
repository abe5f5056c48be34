package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adultScenario = `name: adult
description: "A class atom and a comparison built-in"
pass_token: "test-pass-adult"
document: |
  ontology: {
    prefixes: ex: "http://example.org/family#"
    rules: Adult: body: [
      {class: "ex:Person", arg: "?p"},
      {builtin: "swrlb:greaterThan", args: ["?p", 18]},
    ]
  }
assertions:
  - type: pattern_contains
    rule: Adult
    text: 'invoker.invoke("Adult", "swrlb:greaterThan", 0'
  - type: fact_count
    count: 0
`

const brokenScenario = `name: broken
description: "Expects a fact that is never produced"
document: |
  ontology: rules: R: body: [{class: "owl:Thing", arg: "?x"}]
assertions:
  - type: fact_count
    count: 3
`

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandPassingScenario(t *testing.T) {
	dir := writeFiles(t, map[string]string{"adult.yaml": adultScenario})

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "\u2713 adult")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"adult.yaml":  adultScenario,
		"broken.yaml": brokenScenario,
	})

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 2)
	assert.False(t, resp.Data.Scenarios[1].Pass)
	assert.Contains(t, resp.Data.Scenarios[1].Errors[0], "Expected: 3 facts")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"typo.yaml": "name: typo\nassertion: []\n"})

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "\u2717 typo.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := writeFiles(t, map[string]string{"adult.yaml": adultScenario})
	goldenPath := filepath.Join(dir, "golden", "adult.golden")

	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"adult"`)
	assert.Contains(t, string(golden), `"pass_token":"test-pass-adult"`)

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "\u2713 adult")

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"adult"}`), 0o644))
	out, _, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandFilter(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"adult.yaml":  adultScenario,
		"broken.yaml": brokenScenario,
	})

	out, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--filter", "ad*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"test1.yaml":          "",
		"test2.yml":           "",
		"ignore.txt":          "",
		"sub/nested.yaml":     "",
		"golden/skip.yaml":    "",
		"golden/test1.golden": "",
	})

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "sub", "nested.yaml"),
		filepath.Join(dir, "test1.yaml"),
		filepath.Join(dir, "test2.yml"),
	}, files)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"capacity-paths.yaml": "",
		"capacity-names.yaml": "",
		"interning.yaml":      "",
	})

	files, err := findScenarioFiles(dir, "capacity-*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = findScenarioFiles(dir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "adult.golden"), goldenFilePath("scenarios", "adult"))
}
