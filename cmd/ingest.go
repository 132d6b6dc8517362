package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/minhokang/docqa/internal/pipeline"
	"github.com/minhokang/docqa/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file-or-directory]",
	Short: "Ingest documents into the search index",
	Long: `Reads one document file, or every matching file under a directory,
segments each along its chapter/article outline, embeds the chunks and
stores them in the vector index and the document catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("name", "", "document name (defaults to the file name)")
	ingestCmd.Flags().String("owner", "", "document owner")
	ingestCmd.Flags().String("department", "", "owning department")
	ingestCmd.Flags().String("project", "", "related project")
	ingestCmd.Flags().String("category", "", "document category")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	target := args[0]

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

	seg, err := createSegmenterFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid chunking settings: %w", err)
	}
	ingestor := pipeline.NewIngestor(seg, embedder, store, cat)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("reading %s: %w", target, err)
	}

	var files []string
	if info.IsDir() {
		files, err = collectFiles(target, cfg.Include)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("No files under %s match the include patterns.\n", target)
			return nil
		}
	} else {
		files = []string{target}
	}

	name, _ := cmd.Flags().GetString("name")
	owner, _ := cmd.Flags().GetString("owner")
	department, _ := cmd.Flags().GetString("department")
	project, _ := cmd.Flags().GetString("project")
	category, _ := cmd.Flags().GetString("category")

	reporter := progress.NewReporter()
	reporter.Start(len(files))

	var total int
	for i, path := range files {
		reporter.Update(i+1, filepath.Base(path))

		data, err := os.ReadFile(path)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("reading %s: %w", path, err)
		}

		docName := name
		if docName == "" || len(files) > 1 {
			docName = filepath.Base(path)
		}

		result, err := ingestor.Ingest(ctx, pipeline.IngestRequest{
			Text: string(data),
			Meta: pipeline.DocumentMeta{
				Name:       docName,
				Owner:      owner,
				Department: department,
				Project:    project,
				Category:   category,
			},
		})
		if err != nil {
			reporter.Finish()
			return err
		}
		total += result.Chunks
		if verbose {
			fmt.Printf("\n%s: %d chunks (%d chapters, %d articles, %s)\n",
				result.DocName, result.Chunks, result.TotalChapters, result.TotalArticles, result.Strategy)
		}
	}
	reporter.Finish()

	if err := store.Persist(ctx, cfg.DataDir); err != nil {
		return fmt.Errorf("persisting vector store: %w", err)
	}

	fmt.Printf("Ingested %d documents (%d chunks) into %s\n", len(files), total, cfg.DataDir)
	return nil
}

// collectFiles walks dir and returns files matching any include pattern,
// relative to dir.
func collectFiles(dir string, include []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range include {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("bad include pattern %q: %w", pattern, err)
			}
			if ok {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	return files, err
}
