package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cahrendt0815/alphahandle/pkg/config"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <handle>",
	Short: "Analyze an author's stock calls",
	Long: `Runs the full analysis pipeline for one author.

This command:
- Fetches the author's recent posts
- Extracts ticker mentions and trade intent
- Resolves entry and latest prices against market data
- Computes returns and alpha versus the benchmark
- Stores the resulting scorecard

Example:
  go run ./cmd/alphahandle analyze buccocapital
  go run ./cmd/alphahandle analyze @buccocapital --posts-file posts.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzePostsFile string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringVar(&analyzePostsFile, "posts-file", "", "read posts from a JSONL file instead of the live API")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	handle := args[0]

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	ctx := context.Background()

	// 3. Build store and pipeline
	bundle, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer bundle.close()

	src := newPostSource(cfg, analyzePostsFile, log)
	p := newPipeline(cfg, src, bundle.store, log)

	// 4. Run analysis
	sc, err := p.Analyze(ctx, handle)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", handle, err)
	}

	// 5. Print scorecard
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sc); err != nil {
		return fmt.Errorf("encode scorecard: %w", err)
	}

	return nil
}
