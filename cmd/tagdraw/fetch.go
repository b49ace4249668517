package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tagdraw/internal/collector"
	"tagdraw/internal/ingest"
	"tagdraw/internal/render"
	"tagdraw/internal/report"
	"tagdraw/internal/sampler"
	"tagdraw/internal/storage"
)

var (
	fetchCount      int
	fetchMin        int
	fetchMax        int
	fetchTagsOut    string
	fetchSourcesOut string
	fetchReportOut  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Draw one tag set and print it",
	Long: `Fetch pulls random posts, pools their tags and prints one drawn
sample to stdout. Use --count for a fixed draw size, or --min and --max to
roll the size from a range. The output flags export the run to files.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addFetchFlags(fetchCmd)
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fetchCount, "count", 0, "exact number of tags to draw")
	cmd.Flags().IntVar(&fetchMin, "min", 0, "lower bound of a random draw size")
	cmd.Flags().IntVar(&fetchMax, "max", 0, "upper bound of a random draw size")
	cmd.Flags().StringVar(&fetchTagsOut, "tags-out", "", "write the drawn tags to this file")
	cmd.Flags().StringVar(&fetchSourcesOut, "sources-out", "", "write the source post URLs to this file")
	cmd.Flags().StringVar(&fetchReportOut, "report", "", "write an HTML report to this file")
}

func runFetch(cmd *cobra.Command, args []string) error {
	count, err := resolveCount(cmd)
	if err != nil {
		return err
	}

	col, err := collector.New(logger)
	if err != nil {
		return err
	}

	agg := sampler.New(col, sampler.PolicyFromConfig(),
		sampler.WithLogger(logger),
		sampler.WithProgress(func(requests, max, candidates int) {
			logger.Info("collecting candidates",
				zap.Int("request", requests),
				zap.Int("of", max),
				zap.Int("candidates", candidates))
		}))

	res, err := agg.Fetch(cmd.Context(), count)
	if err != nil {
		return err
	}

	logger.Info(res.Message,
		zap.String("run", res.RunID),
		zap.Int("pool", len(res.Pool)),
		zap.Int("posts", res.Posts),
		zap.Bool("shortfall", res.Shortfall()))

	fmt.Println(render.TagLine(res.Tags))

	if fetchTagsOut != "" {
		if err := storage.WriteTags(fetchTagsOut, res); err != nil {
			return err
		}
	}
	if fetchSourcesOut != "" {
		if err := storage.WriteSources(fetchSourcesOut, res); err != nil {
			return err
		}
	}
	if fetchReportOut != "" {
		if err := report.Write(fetchReportOut, res); err != nil {
			return err
		}
	}
	return nil
}

// resolveCount turns the size flags into a concrete draw size. Validation
// happens here, before any network activity.
func resolveCount(cmd *cobra.Command) (int, error) {
	haveCount := cmd.Flags().Changed("count")
	haveMin := cmd.Flags().Changed("min")
	haveMax := cmd.Flags().Changed("max")

	switch {
	case haveCount && (haveMin || haveMax):
		return 0, fmt.Errorf("--count and --min/--max are mutually exclusive")
	case haveCount:
		if fetchCount < 0 {
			return 0, fmt.Errorf("%d: %w", fetchCount, ingest.ErrNegativeCount)
		}
		return fetchCount, nil
	case haveMin != haveMax:
		return 0, fmt.Errorf("--min and --max must be given together")
	case haveMin:
		r, err := ingest.NewRange(fetchMin, fetchMax)
		if err != nil {
			return 0, err
		}
		return r.Roll(nil), nil
	default:
		return 0, fmt.Errorf("specify --count, or --min and --max")
	}
}
