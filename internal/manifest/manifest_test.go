package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFromFile_Valid(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "catalog.csv"))

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries, 12)

	assert.Equal(t, "design", c.Entries[0].Category)
	assert.Equal(t, "Make it mobile-friendly and responsive", c.Entries[0].Text)

	// Quoted field keeps its comma
	assert.Equal(t, "Use clear, simple language and typography", c.Entries[1].Text)

	assert.Equal(t, "users", c.Entries[11].Category)
	assert.Equal(t, "Build with accessibility in mind", c.Entries[11].Text)
}

func TestReadFromFile_ColumnOrder(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "minimal.csv"))

	require.NoError(t, err)
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "users", c.Entries[0].Category)
	assert.Equal(t, "Avoid technical jargon", c.Entries[0].Text)
}

func TestReadFromFile_NotFound(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "nonexistent.csv"))

	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to open catalog")
}

func TestReadFromString(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Entry
		wantErr string
	}{
		{
			name: "extra columns ignored",
			data: "category,text,notes\nDesign,Be bold,internal\n",
			want: []Entry{{Category: "design", Text: "Be bold"}},
		},
		{
			name: "blank rows skipped",
			data: "category,text\n,\nusers,Feels calm\n",
			want: []Entry{{Category: "users", Text: "Feels calm"}},
		},
		{
			name: "whitespace trimmed",
			data: "category , text\n  design ,  Minimal  \n",
			want: []Entry{{Category: "design", Text: "Minimal"}},
		},
		{name: "empty input", data: "", wantErr: "failed to read catalog header"},
		{name: "missing text column", data: "category\ndesign\n", wantErr: "missing required column: text"},
		{name: "missing category column", data: "text\nBold\n", wantErr: "missing required column: category"},
		{name: "header only", data: "category,text\n", wantErr: "no instructions"},
		{name: "row without text", data: "category,text\ndesign,\n", wantErr: "line 2: text is required"},
		{name: "row without category", data: "category,text\n,Bold\n", wantErr: "line 2: category is required"},
		{name: "bad quoting", data: "category,text\ndesign,\"open\n", wantErr: "failed to read catalog line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ReadFromString(tt.data)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Entries)
		})
	}
}

func TestCatalog_Categories(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "catalog.csv"))
	require.NoError(t, err)

	assert.Equal(t, []string{"design", "functionality", "users"}, c.Categories())
	assert.Len(t, c.InCategory("design"), 4)
	assert.Len(t, c.InCategory("functionality"), 5)
	assert.Empty(t, c.InCategory("screens"))
}
