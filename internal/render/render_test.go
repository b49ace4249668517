package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagLine(t *testing.T) {
	line := TagLine([]string{"long_hair", "artist: some_one", "smile"})
	require.Equal(t, "long hair, artist: some one, smile", line)

	require.Equal(t, "", TagLine(nil))
	require.Equal(t, "solo", TagLine([]string{"solo"}))
}

func TestPoolLinesSortsDisplayForms(t *testing.T) {
	pool := []string{"zzz", "long_hair", "artist: abc"}
	lines := PoolLines(pool)

	require.Equal(t, []string{"artist: abc", "long hair", "zzz"}, lines)
	// Caller's slice stays untouched.
	require.Equal(t, []string{"zzz", "long_hair", "artist: abc"}, pool)
}

func TestSourceLines(t *testing.T) {
	urls := []string{
		"https://danbooru.donmai.us/posts/9",
		"https://danbooru.donmai.us/posts/12",
		"https://danbooru.donmai.us/posts/1",
	}
	require.Equal(t, []string{
		"https://danbooru.donmai.us/posts/1",
		"https://danbooru.donmai.us/posts/12",
		"https://danbooru.donmai.us/posts/9",
	}, SourceLines(urls))
}
