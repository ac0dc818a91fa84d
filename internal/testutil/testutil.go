// Package testutil provides shared fixtures for dictionary tests.
package testutil

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// SampleVariable returns a coherent continuous/float64 feature for tests
// that need a committed entry without caring about its metadata.
func SampleVariable(name string) *variable.Variable {
	return &variable.Variable{
		Name:           name,
		AnalyticalType: taxonomy.Continuous,
		DataType:       taxonomy.Float64,
		Role:           taxonomy.RoleFeature,
		Constraints:    map[string]any{"nullable": true},
	}
}

// WriteDictionary saves a dictionary with the given variables under dir
// and returns its path.
func WriteDictionary(t testing.TB, dir string, vars ...*variable.Variable) string {
	t.Helper()
	path := filepath.Join(dir, "dictionary.yaml")
	doc := &ledger.Document{
		Project:   ledger.ProjectInfo{ProjectName: "Test Project", Version: "1.0.0"},
		Variables: vars,
	}
	if err := ledger.Save(path, doc); err != nil {
		t.Fatalf("failed to write dictionary fixture: %v", err)
	}
	return path
}
