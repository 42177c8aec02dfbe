package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idealauncher/internal/idea"
)

func testBlueprint() *idea.Blueprint {
	return &idea.Blueprint{
		Stages: []idea.StageSpec{
			{ID: "why", Label: "WHY"},
			{ID: "how", Label: "HOW"},
		},
		Threshold:  10,
		Categories: []idea.CategorySpec{{ID: "design"}},
		Catalog: []idea.InstructionTemplate{
			{Category: "design", Text: "Responsive"},
		},
		Policy: idea.PolicyPerCategory,
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		configured string
		want       string
	}{
		{name: "default", want: filepath.Join("/cfg", DefaultFileName)},
		{name: "configured", configured: "/tmp/custom.json", want: "/tmp/custom.json"},
		{name: "env wins", env: "/env/state.json", configured: "/tmp/custom.json", want: "/env/state.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PathEnv, tt.env)
			assert.Equal(t, tt.want, ResolvePath("/cfg", tt.configured))
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	s := NewWithFs(afero.NewMemMapFs(), "/state/state.json")

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewWithFs(fs, "/state/nested/state.json")
	b := testBlueprint()

	st := b.NewState()
	require.NoError(t, st.UpdateText("why", "because habits are hard"))
	require.NoError(t, st.Lock("why"))
	require.NoError(t, st.ToggleApproval("default-0"))
	require.NoError(t, st.SelectSparks([]string{"focus"}))
	st.SetDisplayName("StreakMate")

	require.NoError(t, s.Save(st))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, b.Adopt(loaded))

	why, _ := loaded.Stage("why")
	assert.Equal(t, "because habits are hard", why.Text)
	assert.True(t, why.Locked)
	assert.True(t, loaded.Instructions[0].IsApproved)
	assert.Equal(t, []string{"focus"}, loaded.Selection.Sparks)
	assert.Equal(t, "StreakMate", loaded.DisplayName)

	exists, err := afero.Exists(fs, "/state/nested/state.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "temp file is renamed away")
}

func TestSave_Overwrites(t *testing.T) {
	s := NewWithFs(afero.NewMemMapFs(), "/state.json")
	b := testBlueprint()

	first := b.NewState()
	first.SetDisplayName("First")
	require.NoError(t, s.Save(first))

	second := b.NewState()
	second.SetDisplayName("Second")
	require.NoError(t, s.Save(second))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Second", loaded.DisplayName)
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{ nope"},
		{name: "truncated", content: `{"version": 1, "stages": {"why": `},
		{name: "no stages", content: `{"version": 1}`},
		{name: "wrong types", content: `{"version": "one", "stages": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/state.json", []byte(tt.content), 0o644))

			_, err := NewWithFs(fs, "/state.json").Load()
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestClear(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewWithFs(fs, "/state.json")

	require.NoError(t, s.Clear(), "clearing nothing is fine")
	require.NoError(t, s.Save(testBlueprint().NewState()))
	require.NoError(t, s.Clear())

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestStore_OSFilesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := New(path)
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Save(testBlueprint().NewState()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"view": "entry-selection"`))
}
