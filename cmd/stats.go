package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long:  `Prints the documents in the catalog and the chunk count of the vector index.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	docs, err := cat.List(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	fmt.Printf("Documents: %d\n", len(docs))
	fmt.Printf("Chunks:    %d\n", store.Count())
	fmt.Printf("Model:     %s (%s)\n", cfg.Model, cfg.Provider)
	fmt.Printf("Embedding: %s (%s)\n", cfg.EmbeddingModel, cfg.EmbeddingProvider)
	if len(docs) == 0 {
		return nil
	}

	fmt.Println()
	for _, doc := range docs {
		fmt.Printf("  %s  %s\n", doc.ID, doc.Name)
		fmt.Printf("    %d chunks, %d chapters, %d articles, strategy %s, uploaded %s\n",
			doc.ChunkCount, doc.TotalChapters, doc.TotalArticles, doc.Strategy,
			doc.UploadedAt.Format("2006-01-02 15:04"))
		if doc.Department != "" || doc.Project != "" || doc.Category != "" {
			fmt.Printf("    department=%s project=%s category=%s\n", doc.Department, doc.Project, doc.Category)
		}
	}
	return nil
}
