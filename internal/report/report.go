// Package report renders a self-contained HTML page summarizing a draw:
// how the candidate pool splits across tag categories and which tags kept
// turning up.
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"tagdraw/internal/domain"
	"tagdraw/internal/render"
	"tagdraw/internal/storage"
)

// topN caps the frequency bar so a large pool stays readable.
const topN = 30

// Write renders the report for res into a standalone HTML file at path.
func Write(path string, res *domain.FetchResult) error {
	if res == nil || len(res.Pool) == 0 {
		return storage.ErrNothingToSave
	}

	subtitle := fmt.Sprintf("run %s, %d unique tags from %d posts", res.RunID, len(res.Pool), res.Posts)

	// 1. Category composition
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Tag Categories", Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var pieItems []opts.PieData
	for _, cat := range []string{
		domain.CategoryGeneral,
		domain.CategoryCopyright,
		domain.CategoryCharacter,
		domain.CategoryMeta,
		domain.CategoryArtist,
	} {
		if n := res.Categories[cat]; n > 0 {
			pieItems = append(pieItems, opts.PieData{Name: cat, Value: n})
		}
	}
	pie.AddSeries("Occurrences", pieItems)

	// 2. Most seen tags
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Most Seen Tags"}))

	names, values := topTags(res.Counts, topN)
	bar.SetXAxis(names).AddSeries("Occurrences", values)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write report to %s: %w", path, err)
	}
	defer f.Close()

	if err := pie.Render(f); err != nil {
		return fmt.Errorf("render category chart: %w", err)
	}
	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render frequency chart: %w", err)
	}
	return nil
}

// topTags picks the n most frequent tags, ties broken alphabetically so the
// report is stable between renders of the same result.
func topTags(counts map[string]int, n int) ([]string, []opts.BarData) {
	type entry struct {
		tag   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for tag, count := range counts {
		entries = append(entries, entry{tag, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].tag < entries[j].tag
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	names := make([]string, len(entries))
	values := make([]opts.BarData, len(entries))
	for i, e := range entries {
		names[i] = render.Display(e.tag)
		values[i] = opts.BarData{Value: e.count}
	}
	return names, values
}
