package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsBadLanguage(t *testing.T) {
	f := New([]string{"Badword", " another "})

	assert.True(t, f.ContainsBadLanguage("that is a BADWORD right there"))
	assert.True(t, f.ContainsBadLanguage("another one"))
	assert.False(t, f.ContainsBadLanguage("a perfectly fine message"))
	assert.False(t, f.ContainsBadLanguage(""))
}

func TestEmptyFilterAllowsEverything(t *testing.T) {
	assert.False(t, New(nil).ContainsBadLanguage("anything at all"))

	var nilFilter *Filter
	assert.False(t, nilFilter.ContainsBadLanguage("anything"))
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad_words.json")
	require.NoError(t, os.WriteFile(path, []byte(`["alpha", "beta"]`), 0o600))

	f, err := NewFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Size())
	assert.True(t, f.ContainsBadLanguage("Alpha particle"))
}

func TestNewFromFileMissing(t *testing.T) {
	f, err := NewFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Zero(t, f.Size())
}

func TestNewFromFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad_words.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0o600))

	_, err := NewFromFile(path)
	assert.Error(t, err)
}
