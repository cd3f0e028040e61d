// Batch ingester: reads exported document JSON files from a directory and
// runs each through the pipeline. Re-running over the same export directory
// is safe; every write is an idempotent merge.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/oculairmedia/graphline/internal/config"
	"github.com/oculairmedia/graphline/internal/core/extraction"
	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/driver"
	"github.com/oculairmedia/graphline/internal/llm"
	"github.com/oculairmedia/graphline/internal/pipeline"
	"github.com/oculairmedia/graphline/internal/server"
	"github.com/oculairmedia/graphline/internal/store"
)

func main() {
	dir := flag.String("dir", "bookstack_export_full", "directory of exported document JSON files")
	cfgPath := flag.String("config", "config/config.toml", "path to TOML config")
	dryRun := flag.Bool("dry-run", false, "log operations instead of writing to the store")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("Could not load %s (%v), using defaults", *cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if *dryRun {
		cfg.Pipeline.Driver = "dryrun"
	}

	docs, err := loadDocuments(*dir)
	if err != nil {
		log.Fatalf("Failed to load documents: %v", err)
	}
	log.Printf("Loaded %d documents from %s", len(docs), *dir)

	ctx := context.Background()

	d, err := server.NewDriver(cfg)
	if err != nil {
		log.Fatalf("Failed to open graph driver: %v", err)
	}
	defer d.Close(ctx)

	llmClient, embedderClient, err := llm.NewClient(ctx, llm.Settings{
		Provider:       cfg.LLM.Provider,
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	var embedder llm.Embedder
	if cfg.Pipeline.Embeddings && embedderClient != nil {
		embedder = llm.NewEmbeddingCache(embedderClient)
	}

	st := store.NewClient(d)
	if _, isDry := d.(*driver.DryRunDriver); !isDry {
		if err := st.BuildIndices(ctx); err != nil {
			log.Printf("Warning: failed to build indices: %v", err)
		}
	}

	p := pipeline.New(extraction.NewExtractor(llmClient, cfg.Extraction.Prompt), st, embedder)
	summary := p.ProcessBatch(ctx, docs)

	if summary.Succeeded == 0 && summary.Failed > 0 {
		os.Exit(1)
	}
}

func loadDocuments(dir string) ([]model.Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var docs []model.Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		var doc model.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			log.Printf("Skipping %s: invalid JSON: %v", path, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
