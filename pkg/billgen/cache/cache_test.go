package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func TestPutGet(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put("bill-1", payload{Name: "Community Hall", Total: 536475}))

	var got payload
	ok, err := c.Get("bill-1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Community Hall", got.Name)
	require.Equal(t, 536475.0, got.Total)

	ok, err = c.Get("absent", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLRUEviction(t *testing.T) {
	c, err := New(Options{MaxEntries: 2})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put("a", payload{Name: "a"}))
	require.NoError(t, c.Put("b", payload{Name: "b"}))

	// Touch a so b becomes the eviction victim.
	var got payload
	ok, err := c.Get("a", &got)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Put("c", payload{Name: "c"}))
	require.Equal(t, 2, c.Len())

	ok, err = c.Get("b", &got)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = c.Get("a", &got)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c, err := New(Options{TTL: 10 * time.Millisecond})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put("short", payload{Name: "short"}))
	time.Sleep(30 * time.Millisecond)

	var got payload
	ok, err := c.Get("short", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDiskRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c1, err := New(Options{DiskPath: path})
	require.NoError(t, err)
	require.NoError(t, c1.Put("bill-1", payload{Name: "Community Hall", Total: 536475}))
	require.NoError(t, c1.Close())

	c2, err := New(Options{DiskPath: path})
	require.NoError(t, err)
	defer c2.Close()

	var got payload
	ok, err := c2.Get("bill-1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 536475.0, got.Total)
}

func TestShrinkRecoversFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := New(Options{DiskPath: path})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put("bill-1", payload{Name: "Community Hall"}))
	require.NoError(t, c.Put("bill-2", payload{Name: "School Building"}))

	c.Shrink()
	require.Equal(t, 0, c.Len())

	var got payload
	ok, err := c.Get("bill-2", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "School Building", got.Name)
}

func TestShrinkWithoutDisk(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Put("bill-1", payload{Name: "Community Hall"}))
	c.Shrink()

	var got payload
	ok, err := c.Get("bill-1", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook"), 0o644))

	key1, err := Key(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key1, path+"|"))

	// Same stat, same key.
	key2, err := Key(path)
	require.NoError(t, err)
	require.Equal(t, key1, key2)

	// A content change invalidates the key through size or mtime.
	require.NoError(t, os.WriteFile(path, []byte("workbook v2 longer"), 0o644))
	key3, err := Key(path)
	require.NoError(t, err)
	require.NotEqual(t, key1, key3)

	_, err = Key(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
}

func TestDiskPurgeExpired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := OpenDiskStore(path)
	require.NoError(t, err)
	defer s.Close()

	now := time.Now()
	require.NoError(t, s.Put("live", []byte(`{}`), now.Add(time.Hour)))
	require.NoError(t, s.Put("dead", []byte(`{}`), now.Add(-time.Hour)))
	require.NoError(t, s.Flush())

	require.NoError(t, s.PurgeExpired(now))

	_, ok, err := s.Get("live", now)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.Get("dead", now)
	require.NoError(t, err)
	require.False(t, ok)
}
