package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenSuffix is the file extension of golden files.
const GoldenSuffix = ".golden"

// artifact is one snapshotted output of a result.
type artifact struct {
	suffix string
	data   []byte
}

// goldenArtifacts lists the snapshotted outputs of a result.
func goldenArtifacts(result *Result) []artifact {
	return []artifact{
		{".plan", result.Plan},
		{".merged", result.Merged},
	}
}

// RunWithGolden runs a scenario, requires it to pass, and compares its plan
// text and merged output against golden files in testdata/golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario cannot be evaluated.
// Test failure (via goldie) occurs if output doesn't match a golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Pass {
		return fmt.Errorf("scenario %s failed: %v", scenario.Name, result.Errors)
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an existing result against golden files without
// re-running. Artifacts that were not produced (error scenarios) are skipped.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	for _, a := range goldenArtifacts(result) {
		if a.data == nil {
			continue
		}
		g.Assert(t, name+a.suffix, a.data)
	}
}

// CheckGolden compares a result against golden files in dir, for use outside
// tests. Missing golden files are skipped. Returns one message per mismatch.
func CheckGolden(dir, name string, result *Result) ([]string, error) {
	var mismatches []string
	for _, a := range goldenArtifacts(result) {
		if a.data == nil {
			continue
		}
		path := filepath.Join(dir, name+a.suffix+GoldenSuffix)
		want, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read golden file: %w", err)
		}
		if !bytes.Equal(want, a.data) {
			mismatches = append(mismatches, fmt.Sprintf("output differs from golden file %s", path))
		}
	}
	return mismatches, nil
}

// UpdateGolden writes a result's artifacts as golden files in dir.
func UpdateGolden(dir, name string, result *Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	for _, a := range goldenArtifacts(result) {
		if a.data == nil {
			continue
		}
		path := filepath.Join(dir, name+a.suffix+GoldenSuffix)
		if err := os.WriteFile(path, a.data, 0644); err != nil {
			return fmt.Errorf("write golden file: %w", err)
		}
	}
	return nil
}
