package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeWatcherFire(t *testing.T) {
	var got []uint32
	f := NewFakeWatcher(func(seq uint32) { got = append(got, seq) })

	f.Fire(3)
	assert.Equal(t, []uint32{1, 2, 3}, got)
}

func TestFakeWatcherSkip(t *testing.T) {
	var got []uint32
	f := NewFakeWatcher(func(seq uint32) { got = append(got, seq) })

	f.Fire(1)
	f.Skip(4)
	f.Fire(1)
	assert.Equal(t, []uint32{1, 6}, got)
}

func TestFakeWatcherClose(t *testing.T) {
	calls := 0
	f := NewFakeWatcher(func(uint32) { calls++ })

	assert.False(t, f.Closed, "should not be closed initially")
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)

	f.Fire(5)
	assert.Zero(t, calls, "no edges after Close")
}

func TestFakeWatcherSatisfiesWatcher(t *testing.T) {
	var w Watcher = NewFakeWatcher(func(uint32) {})
	require.NoError(t, w.Close())
}
