package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDefaultSite(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, site.Title)
	assert.Len(t, site.Loading.Messages, 6)
	assert.Equal(t, "Welcome!", site.Loading.Messages[5])
	assert.Len(t, site.Critical, 5)
	assert.Len(t, site.Actions, 4)
	assert.Equal(t, ActionScrollTop, site.Actions[0].Kind)

	want := []string{"Product Visualization", "Motion Graphics", "Architecture"}
	if diff := cmp.Diff(want, site.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	style, ok := site.SectionStyle("projects")
	require.True(t, ok)
	assert.Equal(t, 0.7, style.Start)
	assert.Equal(t, 0.2, style.Stagger)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte("title: x\nunknown_field: 1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("title: ''\n"))
	assert.ErrorContains(t, err, "title")

	_, err = Parse([]byte("title: x\nactions:\n  - {label: Go, kind: link}\n"))
	assert.ErrorContains(t, err, "needs a target")

	_, err = Parse([]byte("title: x\ngallery:\n  - {id: 1, title: a}\n  - {id: 1, title: b}\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: First\n"), 0644))

	w, err := NewWatcher(path, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("title: Second\n"), 0644))

	select {
	case site := <-w.Updates():
		assert.Equal(t, "Second", site.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}

	require.NoError(t, os.WriteFile(path, []byte("title: ''\n"), 0644))
	require.Eventually(t, func() bool {
		_, errs := w.Stats()
		return errs > 0
	}, 5*time.Second, 20*time.Millisecond)

	reloads, _ := w.Stats()
	assert.Equal(t, 1, reloads)
	w.Stop()
	w.Stop()
}
