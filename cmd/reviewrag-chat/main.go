// Command reviewrag-chat runs the corpus pipeline and opens an
// interactive terminal chat instead of the HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"reviewrag/internal/answerer"
	"reviewrag/internal/chunker"
	"reviewrag/internal/cleaner"
	"reviewrag/internal/config"
	"reviewrag/internal/corpus"
	"reviewrag/internal/domain"
	"reviewrag/internal/embedding/openai"
	"reviewrag/internal/index"
	"reviewrag/internal/index/qdrant"
	"reviewrag/internal/llm"
	"reviewrag/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The TUI owns the terminal, so logs go to a file instead of stderr.
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"reviewrag-chat.log"}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	reviews, err := prepareReviews(cfg, logger)
	if err != nil {
		log.Fatalf("corpus preparation failed: %v", err)
	}

	emb, err := openai.NewClient(openai.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("embedder init failed: %v", err)
	}
	store := qdrant.NewStore(qdrant.Config{
		URL:        cfg.Qdrant.URL,
		APIKey:     cfg.Qdrant.APIKey,
		Collection: cfg.Qdrant.Collection,
		Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
	})
	completer, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("llm init failed: %v", err)
	}

	idx := index.NewVector(emb, store, logger)
	builder := corpus.NewBuilder(
		chunker.New(cfg.Chunker.MaxChars, cfg.Chunker.Overlap),
		idx, cfg.Corpus.BatchSize, logger)
	if err := builder.Build(context.Background(), reviews); err != nil {
		log.Fatalf("corpus build failed: %v", err)
	}

	ans := answerer.New(idx, completer, cfg.Answerer.TopK, logger)
	m := tui.New(ans)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func prepareReviews(cfg *config.AppConfig, logger *zap.Logger) ([]domain.Review, error) {
	if _, err := os.Stat(cfg.Corpus.CleanedPath); err == nil {
		return corpus.LoadCleaned(cfg.Corpus.CleanedPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	raws, err := corpus.LoadRaw(cfg.Corpus.RawPath)
	if err != nil {
		return nil, err
	}
	cl := cleaner.New(cleaner.Config{MinArticleLen: cfg.Cleaner.MinArticleLen}, logger)
	reviews := corpus.CleanAll(cl, raws, logger)
	if len(reviews) == 0 {
		return nil, fmt.Errorf("no usable records in %s", cfg.Corpus.RawPath)
	}
	if err := corpus.SaveCleaned(cfg.Corpus.CleanedPath, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
