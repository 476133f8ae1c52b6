package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	verifyContext string
	verifyJSON    bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [text]",
	Short: "Verify a single claim",
	Long: `Verify runs the full pipeline for one claim and prints the report.
The claim is read from the arguments, or from stdin when no argument is
given.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyContext, "context", "",
		"publishing context (journalism, academic, social-media)")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "emit the full report as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reportCache, err := cache.New(cmd.Context(), cfg.Cache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
	}
	defer closeCache(reportCache)

	p, err := pipeline.New(cfg, pipeline.WithCache(reportCache))
	if err != nil {
		return err
	}

	report, err := p.Verify(cmd.Context(), model.VerifyRequest{
		Text:              text,
		PublishingContext: verifyContext,
	})
	if err != nil {
		return err
	}

	if verifyJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, report *model.FactCheckReport) {
	fmt.Fprintf(w, "Verdict:  %s (score %d/100, %s)\n",
		report.FinalVerdict, report.FinalScore, report.Metadata.MethodUsed)
	fmt.Fprintf(w, "Claim:    %s\n", report.OriginalText)
	fmt.Fprintf(w, "Reasoning: %s\n", report.Reasoning)

	fmt.Fprintf(w, "\nScore breakdown: %s\n", report.ScoreBreakdown.FinalScoreFormula)
	for _, metric := range report.ScoreBreakdown.Metrics {
		fmt.Fprintf(w, "  %-22s %3d x %.2f  (%s)\n",
			metric.Name, metric.Score, metric.Weight, metric.Reasoning)
	}

	if len(report.Evidence) > 0 {
		fmt.Fprintf(w, "\nEvidence (%d sources, %d high-credibility):\n",
			report.Metadata.SourcesConsulted.Total,
			report.Metadata.SourcesConsulted.HighCredibility)
		for _, ev := range report.Evidence {
			fmt.Fprintf(w, "  [%3d] %s - %s\n", ev.CredibilityScore, ev.Publisher, ev.Title)
			if ev.URL != "" {
				fmt.Fprintf(w, "        %s\n", ev.URL)
			}
		}
	}

	if len(report.Metadata.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range report.Metadata.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	fmt.Fprintf(w, "\nCompleted in %dms via %s\n",
		report.Metadata.ProcessingTimeMs, strings.Join(report.Metadata.APIsUsed, ", "))
}

func closeCache(c cache.Cache) {
	if c != nil {
		_ = c.Close()
	}
}
