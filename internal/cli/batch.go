package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/worker"
)

var (
	batchContext string
	batchWorkers int
	batchJSON    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Verify many claims from a file, one per line",
	Long: `Batch reads one claim per line from the file (or stdin when the
file is "-") and verifies them concurrently. Blank lines and lines
starting with # are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchContext, "context", "",
		"publishing context applied to every claim")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0,
		"concurrent verifications (default from config)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "emit full reports as JSON")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	texts, err := readClaims(cmd, args[0])
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
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

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Concurrency.BatchWorkers
	}
	pool := worker.NewBatchPool(p, workers)

	results := pool.Run(cmd.Context(), batchContext, texts)

	if batchJSON {
		return printJSON(cmd.OutOrStdout(), results)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, result := range results {
		if result.Err != "" {
			failed++
			fmt.Fprintf(out, "%-12s  %s  (%s)\n", "error", result.Text, result.Err)
			continue
		}
		fmt.Fprintf(out, "%-12s  %3d  %s\n",
			result.Report.FinalVerdict, result.Report.FinalScore, result.Text)
	}
	fmt.Fprintf(out, "\n%d verified, %d failed\n", len(results)-failed, failed)
	return nil
}

func readClaims(cmd *cobra.Command, path string) ([]string, error) {
	var scanner *bufio.Scanner
	if path == "-" {
		scanner = bufio.NewScanner(cmd.InOrStdin())
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open claims file: %w", err)
		}
		defer func() { _ = f.Close() }()
		scanner = bufio.NewScanner(f)
	}

	var texts []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}
	return texts, scanner.Err()
}
