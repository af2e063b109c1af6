package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "walks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestRecordRun_AssignsIDAndTimestamp(t *testing.T) {
	st := newTestStore(t)

	run := ExportRun{
		Input:    "summary.kmz",
		Output:   "out.csv",
		Format:   "csv",
		Records:  42,
		Skipped:  1,
		Duration: 150 * time.Millisecond,
	}
	require.NoError(t, st.RecordRun(context.Background(), &run))

	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestListRuns_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i, input := range []string{"first.kmz", "second.kmz"} {
		run := ExportRun{
			Input:    input,
			Output:   "out.csv",
			Format:   "csv",
			Records:  i,
			Duration: time.Second,
		}
		require.NoError(t, st.RecordRun(ctx, &run))
		time.Sleep(10 * time.Millisecond)
	}

	runs, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second.kmz", runs[0].Input)
	assert.Equal(t, "first.kmz", runs[1].Input)
	assert.Equal(t, time.Second, runs[0].Duration)
}

func TestListRuns_Limit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := ExportRun{Input: "x.kmz", Output: "out.csv", Format: "csv"}
		require.NoError(t, st.RecordRun(ctx, &run))
	}

	runs, err := st.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListRuns_Empty(t *testing.T) {
	st := newTestStore(t)

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestMigrate_Idempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}
