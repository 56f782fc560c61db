package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// GoldenHelper compares generated output with files under a golden
// directory. Setting UPDATE_GOLDEN=true rewrites the files instead.
type GoldenHelper struct {
	t          *testing.T
	goldenDir  string
	updateMode bool
}

// NewGoldenHelper creates a new golden file helper rooted at goldenDir.
func NewGoldenHelper(t *testing.T, goldenDir string) *GoldenHelper {
	t.Helper()

	return &GoldenHelper{
		t:          t,
		goldenDir:  goldenDir,
		updateMode: os.Getenv("UPDATE_GOLDEN") == "true",
	}
}

// GoldenPath returns the full path to a golden file.
func (g *GoldenHelper) GoldenPath(name string) string {
	return filepath.Join(g.goldenDir, name)
}

// readOrUpdate returns the golden content, or writes actual and returns nil in update mode.
func (g *GoldenHelper) readOrUpdate(name string, actual []byte) []byte {
	g.t.Helper()

	goldenPath := g.GoldenPath(name)
	if g.updateMode {
		require.NoError(g.t, os.MkdirAll(filepath.Dir(goldenPath), 0o755), "failed to create golden file directory")
		require.NoError(g.t, os.WriteFile(goldenPath, actual, 0o644), "failed to update golden file")
		g.t.Logf("Updated golden file: %s", goldenPath)
		return nil
	}

	golden, err := os.ReadFile(goldenPath)
	require.NoError(g.t, err, "failed to read golden file %s", goldenPath)
	return golden
}

// AssertGolden compares actual byte-for-byte with the golden file.
func (g *GoldenHelper) AssertGolden(name string, actual []byte) {
	g.t.Helper()

	if golden := g.readOrUpdate(name, actual); golden != nil {
		assert.Equal(g.t, string(golden), string(actual), "content does not match golden file %s", name)
	}
}

// AssertGoldenJSON compares JSON content, ignoring formatting differences.
func (g *GoldenHelper) AssertGoldenJSON(name string, actual []byte) {
	g.t.Helper()

	if golden := g.readOrUpdate(name, actual); golden != nil {
		assert.JSONEq(g.t, string(golden), string(actual), "JSON content does not match golden file %s", name)
	}
}

// AssertGoldenYAML compares YAML documents by value, ignoring indentation and quoting.
func (g *GoldenHelper) AssertGoldenYAML(name string, actual []byte) {
	g.t.Helper()

	golden := g.readOrUpdate(name, actual)
	if golden == nil {
		return
	}

	var want, got any
	require.NoError(g.t, yaml.Unmarshal(golden, &want), "golden file %s is not valid YAML", name)
	require.NoError(g.t, yaml.Unmarshal(actual, &got), "output is not valid YAML")
	assert.Equal(g.t, want, got, "YAML content does not match golden file %s", name)
}
