package collector

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"tagdraw/internal/domain"
)

// MockClient implements domain.Collector but fabricates posts locally.
// Useful for demos and for exercising the pipeline without hitting the API.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// Small corpora of plausible tags per category. Enough variety that a mock
// run usually clears the oversampling threshold in one or two pages.
var (
	mockGeneral = []string{
		"1girl", "solo", "long_hair", "short_hair", "smile", "blue_eyes",
		"brown_hair", "skirt", "school_uniform", "outdoors", "night_sky",
		"cherry_blossoms", "rain", "umbrella", "scenery", "cityscape",
		"holding", "sitting", "standing", "looking_at_viewer", "open_mouth",
		"twintails", "ponytail", "glasses", "hat", "ribbon", "flower",
		"sword", "armor", "wings", "cat_ears", "maid", "kimono", "snow",
	}
	mockCopyright = []string{
		"touhou", "original", "fate_(series)", "kantai_collection",
		"genshin_impact", "vocaloid", "pokemon", "azur_lane",
	}
	mockCharacter = []string{
		"hakurei_reimu", "kirisame_marisa", "hatsune_miku", "artoria_pendragon",
		"remilia_scarlet", "pikachu", "saber", "flandre_scarlet",
	}
	mockMeta = []string{
		"highres", "absurdres", "commentary", "translated", "bad_id",
		"official_art", "scan",
	}
	mockArtist = []string{
		"zun", "kantoku", "huke", "redjuice", "wlop", "rella", "ask_(askzy)",
	}
)

func (mc *MockClient) RandomPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	// Simulate network latency so the UI spinner is visible
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	posts := make([]domain.Post, 0, limit)
	for i := 0; i < limit; i++ {
		posts = append(posts, domain.Post{
			ID:            1000000 + rand.Intn(9000000),
			TagsGeneral:   pick(mockGeneral, 4+rand.Intn(6)),
			TagsCopyright: pick(mockCopyright, 1),
			TagsCharacter: pick(mockCharacter, rand.Intn(3)),
			TagsMeta:      pick(mockMeta, rand.Intn(3)),
			TagsArtist:    pick(mockArtist, 1),
		})
	}
	return posts, nil
}

// pick joins n random entries of corpus into a whitespace-delimited tag
// string, the shape the real API returns.
func pick(corpus []string, n int) string {
	if n <= 0 {
		return ""
	}
	chosen := make([]string, 0, n)
	for _, idx := range rand.Perm(len(corpus)) {
		chosen = append(chosen, corpus[idx])
		if len(chosen) == n {
			break
		}
	}
	return strings.Join(chosen, " ")
}
