package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rack-editor/internal/rack"
	"go-rack-editor/pkg/rackgrid"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "rack-editor", "saves"), dir)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := rack.NewManager(rackgrid.Default())
	m.Add(rackgrid.Pt(100, 100), rack.NoResource)
	m.Add(rackgrid.Pt(125.84, 100), rack.NoResource)
	m.Add(rackgrid.Pt(300, 600), rack.NoResource)
	m.SelectAt(rackgrid.Pt(100, 100), false)
	want := m.Snapshot()

	require.NoError(t, s.Save(ctx, "test_rack", want))
	assert.FileExists(t, filepath.Join(s.Dir(), "test_rack.json"))
	assert.True(t, s.Exists("test_rack"))

	got, err := s.Load(ctx, "test_rack")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	restored := rack.NewManager(rackgrid.Default())
	require.NoError(t, restored.Restore(got, rack.NoResource))
	assert.Equal(t, m.Positions(), restored.Positions())
	assert.Zero(t, restored.SelectedCount())
}

func TestSaveEmptyRackWritesEmptyList(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), "empty", rack.State{}))

	data, err := os.ReadFile(s.Path("empty"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"plugins": []}`, string(data))

	got, err := s.Load(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	first := rack.State{Plugins: []rack.Record{{X: 100, Y: 100, ID: 0}}}
	second := rack.State{Plugins: []rack.Record{{X: 100, Y: 480, ID: 3}}}

	require.NoError(t, s.Save(ctx, "r", first))
	require.NoError(t, s.Save(ctx, "r", second))
	got, err := s.Load(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `this is not json`},
		{"wrong container", `{"modules": []}`},
		{"null plugins", `{"plugins": null}`},
		{"missing x", `{"plugins": [{"y": 100, "selected": false, "id": 0}]}`},
		{"missing y", `{"plugins": [{"x": 100, "selected": false, "id": 0}]}`},
		{"missing selected", `{"plugins": [{"x": 100, "y": 100, "id": 0}]}`},
		{"missing id", `{"plugins": [{"x": 100, "y": 100, "selected": false}]}`},
		{"negative id", `{"plugins": [{"x": 100, "y": 100, "selected": false, "id": -1}]}`},
		{"string coordinate", `{"plugins": [{"x": "100", "y": 100, "selected": false, "id": 0}]}`},
		{"trailing garbage", `{"plugins": []} {garbage`},
		{"second document", `{"plugins": []}{"plugins": []}`},
		{"stray brace", `{"plugins": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path("bad"), []byte(tt.content), 0644))
			_, err := s.Load(context.Background(), "bad")
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeFieldOrderIrrelevant(t *testing.T) {
	st, err := Decode(strings.NewReader(`{"plugins":[{"id":7,"selected":true,"y":480,"x":130.4}]}`))
	require.NoError(t, err)
	assert.Equal(t, []rack.Record{{X: 130.4, Y: 480, Selected: true, ID: 7}}, st.Plugins)
}

func TestInvalidNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"", ".hidden", "../escape", "a/b", `a\b`, "rack.json", ".json"} {
		err := s.Save(ctx, name, rack.State{})
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
		_, err = s.Load(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
		assert.False(t, s.Exists(name))
	}
}

func TestDecodeAllowsTrailingWhitespace(t *testing.T) {
	st, err := Decode(strings.NewReader("{\"plugins\": []}\n\n  "))
	require.NoError(t, err)
	assert.Empty(t, st.Plugins)
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"rack", "rack"},
		{"rack.json", "rack"},
		{"  rack.json ", "rack"},
		{"rack.json.json", "rack.json"},
		{".json", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.in))
		})
	}

	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, CanonicalName("x.json"), rack.State{}))
	assert.True(t, s.Exists("x"))
	assert.Equal(t, filepath.Join(s.Dir(), "x.json"), s.Path("x"))
	assert.ErrorIs(t, ValidateName(CanonicalName("x.json.json")), ErrInvalidName)
}

func TestListAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"zeta", "alpha", "default"} {
		require.NoError(t, s.Save(ctx, name, rack.State{}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0644))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
		assert.Positive(t, e.Size)
	}
	assert.Equal(t, []string{"alpha", "default", "zeta"}, names)

	require.NoError(t, s.Delete(ctx, "alpha"))
	require.NoError(t, s.Delete(ctx, "alpha"))
	assert.False(t, s.Exists("alpha"))
}

func TestCancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Save(ctx, "r", rack.State{}), context.Canceled)
	_, err := s.Load(ctx, "r")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Exists("r"))
}
