package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhokang/docqa/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question and get a generated answer with sources",
	Long: `Runs the full question-answering pipeline: retrieves the most relevant
chunks, optionally reranks them with a cross-encoder, and generates an
answer grounded in the retrieved text.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("department", "", "filter by department")
	askCmd.Flags().String("project", "", "filter by project")
	askCmd.Flags().String("category", "", "filter by category")
	askCmd.Flags().String("chapter", "", "filter by chapter number")
	askCmd.Flags().String("article", "", "filter by article number")
	askCmd.Flags().Bool("json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := openStore(ctx, cfg, embedder)
	if err != nil {
		return err
	}

	cat, database, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}

	orch := pipeline.NewOrchestrator(embedder, store, createRerankerFromConfig(cfg), provider, cat, orchestratorConfig(cfg))

	ans, err := orch.Answer(ctx, question, pipeline.QueryOptions{Filter: filterFromFlags(cmd)})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	}

	fmt.Println(ans.Answer)
	if len(ans.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range ans.Sources {
			line := fmt.Sprintf("  %d. %s [chunk %d]", src.Index, src.DocName, src.ChunkIndex)
			if src.HierarchyPath != "" {
				line += " (" + src.HierarchyPath + ")"
			}
			fmt.Println(line)
		}
	}
	if verbose {
		fmt.Printf("\n(%d sources, %s)\n", len(ans.Sources), ans.Elapsed.Round(time.Millisecond))
	}
	return nil
}
