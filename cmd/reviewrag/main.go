// Command reviewrag builds the review corpus into the vector index and
// serves the chat API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"reviewrag/internal/answerer"
	"reviewrag/internal/api"
	"reviewrag/internal/chunker"
	"reviewrag/internal/cleaner"
	"reviewrag/internal/config"
	"reviewrag/internal/corpus"
	"reviewrag/internal/domain"
	"reviewrag/internal/embedding/openai"
	"reviewrag/internal/index"
	"reviewrag/internal/index/qdrant"
	"reviewrag/internal/llm"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	var cfgPath string
	var cleanOnly bool
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.BoolVar(&cleanOnly, "clean-only", false, "Clean the raw corpus, write the cleaned artifact and exit")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	log, err := newLogger(cfg.Server.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	reviews, err := prepareReviews(cfg, log)
	if err != nil {
		log.Error("corpus preparation failed", zap.Error(err))
		return 1
	}
	if cleanOnly {
		log.Info("cleaned corpus written, exiting", zap.String("path", cfg.Corpus.CleanedPath))
		return 0
	}

	idx, completer, err := buildCollaborators(cfg, log)
	if err != nil {
		log.Error("collaborator setup failed", zap.Error(err))
		return 1
	}

	// Startup phase: the index must be populated before serving. A build
	// failure means the process must not accept traffic.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := corpus.NewBuilder(
		chunker.New(cfg.Chunker.MaxChars, cfg.Chunker.Overlap),
		idx, cfg.Corpus.BatchSize, log)
	if err := builder.Build(ctx, reviews); err != nil {
		log.Error("corpus build failed, refusing to serve", zap.Error(err))
		return 1
	}

	ans := answerer.New(idx, completer, cfg.Answerer.TopK, log)
	handler := api.NewHandler(ans, log)
	server := api.NewServer(cfg.Server.Port, cfg.Server.Debug, handler, func() bool { return true }, log)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			return 1
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
			return 1
		}
	}
	return 0
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// prepareReviews loads the cleaned artifact when present; otherwise it
// cleans the raw corpus and writes the artifact for the next run.
func prepareReviews(cfg *config.AppConfig, log *zap.Logger) ([]domain.Review, error) {
	if _, err := os.Stat(cfg.Corpus.CleanedPath); err == nil {
		log.Info("loading cleaned corpus", zap.String("path", cfg.Corpus.CleanedPath))
		return corpus.LoadCleaned(cfg.Corpus.CleanedPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	log.Info("cleaning raw corpus", zap.String("path", cfg.Corpus.RawPath))
	raws, err := corpus.LoadRaw(cfg.Corpus.RawPath)
	if err != nil {
		return nil, err
	}
	cl := cleaner.New(cleaner.Config{MinArticleLen: cfg.Cleaner.MinArticleLen}, log)
	reviews := corpus.CleanAll(cl, raws, log)
	log.Info("corpus cleaned",
		zap.Int("raw", len(raws)),
		zap.Int("kept", len(reviews)),
		zap.Int("skipped", len(raws)-len(reviews)))
	if err := corpus.SaveCleaned(cfg.Corpus.CleanedPath, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func buildCollaborators(cfg *config.AppConfig, log *zap.Logger) (domain.Index, domain.Completer, error) {
	emb, err := openai.NewClient(openai.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("embedder init: %w", err)
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
		return nil, nil, fmt.Errorf("llm init: %w", err)
	}

	return index.NewVector(emb, store, log), completer, nil
}
