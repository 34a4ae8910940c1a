package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatestats/github"
	"templatestats/logger"
)

func init() {
	// Initialize logger for tests
	_ = logger.Initialize("debug")
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")

	c := Load(path)
	assert.Equal(t, 0, c.Len())

	c.Put(42, []github.Review{{User: github.User{Login: "bob"}, State: "APPROVED"}})
	c.Put(43, []github.Review{})
	require.NoError(t, c.Save())

	reloaded := Load(path)
	assert.Equal(t, 2, reloaded.Len())

	reviews, ok := reloaded.Get(42)
	require.True(t, ok)
	require.Len(t, reviews, 1)
	assert.Equal(t, "bob", reviews[0].User.Login)
	assert.Equal(t, "APPROVED", reviews[0].State)

	empty, ok := reloaded.Get(43)
	require.True(t, ok)
	assert.Empty(t, empty)

	_, ok = reloaded.Get(99)
	assert.False(t, ok)
}

func TestKeysPersistAsStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")

	c := Load(path)
	c.Put(7, nil)
	require.NoError(t, c.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"7"`)
}

func TestSaveSkippedWithoutMisses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")

	c := Load(path)
	require.NoError(t, c.Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clean cache must not write a file")
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0o644))

	c := Load(path)
	assert.Equal(t, 0, c.Len())
}

func TestBadKeysSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"42": [], "oops": []}`), 0o644))

	c := Load(path)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(42)
	assert.True(t, ok)
}
