package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewStack_PopReturnsNewest(t *testing.T) {
	s, err := NewReviewStack(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Push("alice: slow queue"))
	require.NoError(t, s.Push("bob: great service"))

	top, ok, err := s.Pop()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bob: great service", top)

	top, ok, err = s.Pop()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice: slow queue", top)

	_, ok, err = s.Pop()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReviewStack_FileIsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	s, err := NewReviewStack(dir)
	require.NoError(t, err)

	require.NoError(t, s.Push("first"))
	require.NoError(t, s.Push("second"))

	data, err := os.ReadFile(filepath.Join(dir, reviewsFile))
	require.NoError(t, err)
	assert.Equal(t, "second\nfirst\n", string(data))
}

func TestReviewStack_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewReviewStack(dir)
	require.NoError(t, err)

	require.NoError(t, s.Push("first"))
	require.NoError(t, s.Push("second"))
	require.NoError(t, s.Push("third"))

	reloaded, err := NewReviewStack(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, reloaded.All())
	assert.Equal(t, 3, reloaded.Len())

	top, ok, err := reloaded.Pop()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "third", top)
}
