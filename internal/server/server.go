package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/oculairmedia/graphline/internal/config"
	"github.com/oculairmedia/graphline/internal/core/extraction"
	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/driver"
	"github.com/oculairmedia/graphline/internal/llm"
	"github.com/oculairmedia/graphline/internal/pipeline"
	"github.com/oculairmedia/graphline/internal/store"
)

type Server struct {
	Pipeline *pipeline.Pipeline
	Store    *store.Client
	Reranker llm.Reranker
}

// NewDriver opens the graph sink selected by config.
func NewDriver(cfg *config.Config) (driver.GraphDriver, error) {
	switch cfg.Pipeline.Driver {
	case "falkor":
		return driver.NewFalkorDriver(cfg.Falkor.Addr, cfg.Falkor.Graph)
	case "memgraph":
		return driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	case "dryrun":
		return driver.NewDryRunDriver(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown graph driver %q", cfg.Pipeline.Driver)
	}
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s (%v), using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	d, err := NewDriver(cfg)
	if err != nil {
		log.Fatalf("Failed to open graph driver: %v", err)
	}

	llmClient, embedderClient, err := llm.NewClient(context.Background(), llm.Settings{
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
	if err := st.BuildIndices(context.Background()); err != nil {
		log.Printf("Warning: failed to build indices: %v", err)
	}

	extractor := extraction.NewExtractor(llmClient, cfg.Extraction.Prompt)

	return &Server{
		Pipeline: pipeline.New(extractor, st, embedder),
		Store:    st,
		Reranker: llm.NewSimpleLLMReranker(llmClient),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/documents", s.AddDocuments)
	r.POST("/search", s.Search)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type AddDocumentsRequest struct {
	Documents []model.Document `json:"documents"`
}

func (s *Server) AddDocuments(c *gin.Context) {
	var req AddDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if len(req.Documents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents provided"})
		return
	}

	summary := s.Pipeline.ProcessBatch(c.Request.Context(), req.Documents)

	status := http.StatusOK
	if summary.Succeeded == 0 && summary.Failed > 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"documents":     summary.Documents,
		"succeeded":     summary.Succeeded,
		"failed":        summary.Failed,
		"failed_ids":    summary.FailedIDs,
		"entities":      summary.Entities,
		"relationships": summary.Relationships,
		"skipped_rels":  summary.SkippedRels,
		"ops_applied":   summary.OpsApplied,
		"ops_failed":    summary.OpsFailed,
	})
}

type SearchRequest struct {
	GroupID string `json:"group_id"`
	Query   string `json:"query"`
	Limit   int    `json:"limit"`
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	results, err := s.Store.SearchEntities(c.Request.Context(), req.GroupID, req.Query, req.Limit, s.Reranker)
	if err != nil {
		log.Printf("Failed to search: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
