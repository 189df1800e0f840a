package rename

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/internal/match"
	"github.com/vmunix/renamarr/pkg/epname"
)

func testExecutor() *Executor {
	return NewExecutor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func dirContents(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func planFor(dir string, files map[string]*catalog.Episode) *Plan {
	results := make([]match.Result, 0, len(files))
	for name, ep := range files {
		results = append(results, match.Result{
			File:       epname.Parse(filepath.Join(dir, name)),
			Episode:    ep,
			Confidence: match.ConfidenceExact,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].File.Path < results[j].File.Path })
	return NewPlanner("Foo", nil).Plan(results)
}

func TestApply_RenamesFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.s01e01.mkv"))
	touch(t, filepath.Join(dir, "foo.s01e02.mkv"))

	plan := planFor(dir, map[string]*catalog.Episode{
		"foo.s01e01.mkv": {Season: 1, Number: 1, Title: "Pilot"},
		"foo.s01e02.mkv": {Season: 1, Number: 2, Title: "Second"},
	})

	require.NoError(t, testExecutor().Apply(context.Background(), plan))

	assert.Equal(t, []string{
		"Foo - S01E01 - Pilot.mkv",
		"Foo - S01E02 - Second.mkv",
	}, dirContents(t, dir))
	for _, op := range plan.Operations {
		assert.Equal(t, StatusApplied, op.Status)
	}
}

func TestApply_DryRunLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.s01e01.mkv"))

	plan := planFor(dir, map[string]*catalog.Episode{
		"foo.s01e01.mkv": {Season: 1, Number: 1, Title: "Pilot"},
	})

	ex := testExecutor()
	ex.DryRun = true
	require.NoError(t, ex.Apply(context.Background(), plan))

	assert.Equal(t, []string{"foo.s01e01.mkv"}, dirContents(t, dir))
	assert.Equal(t, StatusPlanned, plan.Operations[0].Status)
}

func TestApply_Idempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.s01e01.mkv"))

	episodes := map[string]*catalog.Episode{
		"foo.s01e01.mkv": {Season: 1, Number: 1, Title: "Pilot"},
	}
	ex := testExecutor()
	require.NoError(t, ex.Apply(context.Background(), planFor(dir, episodes)))

	// Second run over the renamed file: the only operation is a self-rename.
	second := planFor(dir, map[string]*catalog.Episode{
		"Foo - S01E01 - Pilot.mkv": {Season: 1, Number: 1, Title: "Pilot"},
	})
	require.Len(t, second.Operations, 1)
	assert.True(t, second.Noop())

	require.NoError(t, ex.Apply(context.Background(), second))
	assert.Equal(t, []string{"Foo - S01E01 - Pilot.mkv"}, dirContents(t, dir))
}

func TestApply_RollbackOnFailure(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.s01e01.mkv"))
	touch(t, filepath.Join(dir, "b.s01e02.mkv"))
	touch(t, filepath.Join(dir, "c.s01e03.mkv"))

	plan := planFor(dir, map[string]*catalog.Episode{
		"a.s01e01.mkv": {Season: 1, Number: 1, Title: "Pilot"},
		"b.s01e02.mkv": {Season: 1, Number: 2, Title: "Second"},
		"c.s01e03.mkv": {Season: 1, Number: 3, Title: "Third"},
	})
	// Invalidate the second operation after planning.
	require.NoError(t, os.Remove(filepath.Join(dir, "b.s01e02.mkv")))
	before := dirContents(t, dir)

	err := testExecutor().Apply(context.Background(), plan)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.ErrorIs(t, err, ErrSourceMissing)
	assert.Equal(t, filepath.Join(dir, "b.s01e02.mkv"), batchErr.Failed.Source)
	assert.Equal(t, []string{filepath.Join(dir, "a.s01e01.mkv")}, batchErr.RolledBack)

	// Filesystem is back to its pre-Apply state.
	assert.Equal(t, before, dirContents(t, dir))

	assert.Equal(t, StatusPlanned, plan.Operations[0].Status)
	assert.Equal(t, StatusFailed, plan.Operations[1].Status)
	assert.ErrorIs(t, plan.Operations[1].Err, ErrSourceMissing)
	assert.Equal(t, StatusSkipped, plan.Operations[2].Status)
}

func TestApply_DestinationExistsAborts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.s01e01.mkv"))
	touch(t, filepath.Join(dir, "Foo - S01E01 - Pilot.mkv"))

	plan := planFor(dir, map[string]*catalog.Episode{
		"a.s01e01.mkv": {Season: 1, Number: 1, Title: "Pilot"},
	})

	err := testExecutor().Apply(context.Background(), plan)
	assert.ErrorIs(t, err, ErrDestinationExists)
	assert.Equal(t, []string{"Foo - S01E01 - Pilot.mkv", "a.s01e01.mkv"}, dirContents(t, dir))
}

func TestApply_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.s01e01.mkv"))

	plan := planFor(dir, map[string]*catalog.Episode{
		"a.s01e01.mkv": {Season: 1, Number: 1, Title: "Pilot"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testExecutor().Apply(ctx, plan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a.s01e01.mkv"}, dirContents(t, dir))
}
