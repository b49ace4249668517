package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tagdraw/internal/domain"
	"tagdraw/internal/render"
)

func TestWriteTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")
	res := &domain.FetchResult{Tags: []string{"long_hair", "artist: zun", "solo"}}

	require.NoError(t, WriteTags(path, res))

	// Round trip: the file reads back as exactly the rendered line.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, render.TagLine(res.Tags), string(data))
	require.Equal(t, "long hair, artist: zun, solo", string(data))
}

func TestWriteTagsOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")

	require.NoError(t, WriteTags(path, &domain.FetchResult{Tags: []string{"first"}}))
	require.NoError(t, WriteTags(path, &domain.FetchResult{Tags: []string{"second"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestWriteTagsNothingToSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")

	require.ErrorIs(t, WriteTags(path, nil), ErrNothingToSave)
	require.ErrorIs(t, WriteTags(path, &domain.FetchResult{}), ErrNothingToSave)
	require.NoFileExists(t, path)
}

func TestWriteSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	res := &domain.FetchResult{SourceURLs: []string{
		"https://danbooru.donmai.us/posts/9",
		"https://danbooru.donmai.us/posts/1",
	}}

	require.NoError(t, WriteSources(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"https://danbooru.donmai.us/posts/1\nhttps://danbooru.donmai.us/posts/9",
		string(data))
}

func TestWriteSourcesNothingToSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	require.ErrorIs(t, WriteSources(path, &domain.FetchResult{}), ErrNothingToSave)
}

func TestWriteReportsPathErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "tags.txt")
	err := WriteTags(missing, &domain.FetchResult{Tags: []string{"solo"}})
	require.Error(t, err)
	require.ErrorContains(t, err, "write tags")
}
