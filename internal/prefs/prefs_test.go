package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	file, err := NewFileStore(filepath.Join(dir, "prefs.json"))
	require.NoError(t, err)
	db, err := NewSQLiteStore(filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return map[string]Store{"memory": NewMemoryStore(), "file": file, "sqlite": db}
}

func TestStoresRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("k", "v1"))
			require.NoError(t, s.Set("k", "v2"))
			v, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, s.Delete("k"))
			_, ok, _ = s.Get("k")
			assert.False(t, ok)
		})
	}
}

func TestVisitCountAutoSkip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for visit := 1; visit <= 3; visit++ {
				m, err := Open(s, false)
				require.NoError(t, err)
				assert.Equal(t, visit, m.Get().VisitCount)
				assert.False(t, m.Get().SkipLoadingScreen)
			}
			m, err := Open(s, false)
			require.NoError(t, err)
			want := Preferences{SkipLoadingScreen: true, VisitCount: 4}
			if diff := cmp.Diff(want, m.Get()); diff != "" {
				t.Errorf("preferences mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, want, Peek(s))
		})
	}
}

func TestCorruptRecordFallsBackToDefaults(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(Key, "{not json"))

	m, err := Open(s, false)
	require.NoError(t, err)
	assert.Equal(t, Preferences{VisitCount: 1}, m.Get())

	raw, _, _ := s.Get(Key)
	assert.JSONEq(t, `{"skipLoadingScreen":false,"reducedAnimations":false,"visitCount":1}`, raw)
}

func TestPartialRecordMergesDefaults(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(Key, `{"reducedAnimations":true}`))
	m, err := Open(s, false)
	require.NoError(t, err)
	assert.Equal(t, Preferences{ReducedAnimations: true, VisitCount: 1}, m.Get())
}

func TestSystemReducedMotionIsNotPersisted(t *testing.T) {
	s := NewMemoryStore()
	m, err := Open(s, true)
	require.NoError(t, err)
	assert.True(t, m.Get().ReducedAnimations)
	assert.False(t, Peek(s).ReducedAnimations)

	require.NoError(t, m.Update(func(p *Preferences) { p.SkipLoadingScreen = true }))
	assert.True(t, Peek(s).SkipLoadingScreen)

	require.NoError(t, m.Reset())
	assert.Equal(t, Defaults(), Peek(s))
}

func TestFileStoreToleratesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
	s, err := NewFileStore(path)
	require.NoError(t, err)

	m, err := Open(s, false)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Get().VisitCount)
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore("memory", dir)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = OpenStore("sqlite", dir)
	require.NoError(t, err)
	defer s.Close()
	assert.FileExists(t, filepath.Join(dir, "preferences.db"))

	_, err = OpenStore("redis", dir)
	assert.Error(t, err)
}
