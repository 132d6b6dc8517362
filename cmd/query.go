package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minhokang/docqa/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Search the index without generating an answer",
	Long:  `Embeds the question, searches the vector index and prints the matching chunks with their hierarchy paths.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", 5, "maximum number of results")
	queryCmd.Flags().String("department", "", "filter by department")
	queryCmd.Flags().String("project", "", "filter by project")
	queryCmd.Flags().String("category", "", "filter by category")
	queryCmd.Flags().String("chapter", "", "filter by chapter number")
	queryCmd.Flags().String("article", "", "filter by article number")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func filterFromFlags(cmd *cobra.Command) *vectordb.Filter {
	department, _ := cmd.Flags().GetString("department")
	project, _ := cmd.Flags().GetString("project")
	category, _ := cmd.Flags().GetString("category")
	chapter, _ := cmd.Flags().GetString("chapter")
	article, _ := cmd.Flags().GetString("article")

	f := vectordb.Filter{
		Department:    department,
		Project:       project,
		Category:      category,
		ChapterNumber: chapter,
		ArticleNumber: article,
	}
	if f == (vectordb.Filter{}) {
		return nil
	}
	return &f
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
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
	if store.Count() == 0 {
		fmt.Println("Index is empty. Run `docqa ingest` first.")
		return nil
	}

	vecs, err := embedder.Embed(ctx, []string{question})
	if err != nil {
		return fmt.Errorf("embedding question: %w", err)
	}

	results, err := store.SearchVector(ctx, vecs[0], limit, filterFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Print(vectordb.FormatResults(results))
	return nil
}
