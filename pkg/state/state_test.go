package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpdateCountDefaultsToZero(t *testing.T) {
	s := openTestStore(t)

	count, err := s.UpdateCount(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), count)
}

func TestUpdateCountRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetUpdateCount(2, 41))
	require.NoError(t, s.SetUpdateCount(5, 9))

	count, err := s.UpdateCount(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(41), count)

	count, err = s.UpdateCount(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(9), count)
}

func TestUpdateCountSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetUpdateCount(0, 1234))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	count, err := s.UpdateCount(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(1234), count)
}

func TestRecordRun(t *testing.T) {
	s := openTestStore(t)

	id, err := s.RecordRun(Run{
		StartedAt:   time.Now().UTC(),
		BaseAddress: 0xf4bda000,
		Slots:       []int{0, 2},
	})
	require.NoError(t, err)
	assert.False(t, id.IsNil())

	// Consecutive runs get distinct ids.
	other, err := s.RecordRun(Run{StartedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
