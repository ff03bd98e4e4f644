package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "face001", c.Character())
	assert.Len(t, c.Names(), 21)
	assert.Len(t, c.Exhibits(), 20)

	for _, name := range []string{"Cube009", "Cube011", "Cube084", "Cube095", "Cube124", "Cube129", "face001"} {
		assert.True(t, c.Recognized(name), name)
	}
	assert.False(t, c.Recognized("Cube010"))
	assert.False(t, c.Recognized("cube084"))

	e, ok := c.Lookup("Cube084")
	require.True(t, ok)
	assert.Equal(t, "Chattie", e.Title)
	assert.Equal(t, "Cube084", e.Name)
	assert.Equal(t, "https://github.com/yatinkashyap1252/Chattie-chat_app", e.Link)
	assert.NotEmpty(t, e.Description)

	e, ok = c.Lookup("Cube124")
	require.True(t, ok)
	assert.Equal(t, "Let’s Connect", e.Title)
	assert.Equal(t, "www.linkedin.com/in/yatin-kashyap-96a7412b6", e.Link)
}

func TestLookup_WithoutMetadataFallsBackToName(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	e, ok := c.Lookup("face001")
	require.True(t, ok)
	assert.Equal(t, "face001", e.DisplayTitle())
	assert.Empty(t, e.Description)
	assert.Empty(t, e.Link)

	_, ok = c.Lookup("Plane")
	assert.False(t, ok)
}

func TestExhibitsSortedByName(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	list := c.Exhibits()
	assert.Equal(t, "Cube009", list[0].Name)
	assert.Equal(t, "Cube129", list[len(list)-1].Name)
}

func TestNamesReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	names := c.Names()
	names[0] = "changed"
	assert.Equal(t, "Cube009", c.Names()[0])
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":           "character: [",
		"no character":       "clickable: [a]",
		"duplicate":          "character: a\nclickable: [a, a]",
		"character unlisted": "character: a\nclickable: [b]",
		"exhibit not listed": "character: a\nclickable: [a]\nexhibits:\n  b:\n    title: B",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhibits.yaml")
	doc := "character: hero\nclickable: [hero, Sign]\nexhibits:\n  Sign:\n    title: Welcome\n    link: example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hero", c.Character())
	e, ok := c.Lookup("Sign")
	require.True(t, ok)
	assert.Equal(t, "Welcome", e.DisplayTitle())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "face001", c.Character())
}
