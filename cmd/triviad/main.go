// Command triviad runs the retrieval-grounded trivia service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/triviad/internal/chunker"
	"github.com/fyrsmithlabs/triviad/internal/config"
	"github.com/fyrsmithlabs/triviad/internal/embeddings"
	"github.com/fyrsmithlabs/triviad/internal/extract"
	"github.com/fyrsmithlabs/triviad/internal/httpapi"
	"github.com/fyrsmithlabs/triviad/internal/interview"
	"github.com/fyrsmithlabs/triviad/internal/llm"
	"github.com/fyrsmithlabs/triviad/internal/logging"
	"github.com/fyrsmithlabs/triviad/internal/trivia"
	"github.com/fyrsmithlabs/triviad/internal/vectorstore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "triviad",
		Short: "Retrieval-grounded trivia generation and grading service",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.AddCommand(serve)

	return root
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	embedder, err := embeddings.NewProvider(embeddings.Config{
		Provider: cfg.Embedding.Provider,
		BaseURL:  cfg.Embedding.BaseURL,
		Model:    cfg.Embedding.Model,
		APIKey:   cfg.Embedding.APIKey,
	})
	if err != nil {
		return fmt.Errorf("creating embedding provider: %w", err)
	}

	store, err := vectorstore.NewChromemStore(vectorstore.ChromemConfig{
		Path:     cfg.Store.Path,
		Compress: cfg.Store.Compress,
	}, embedder, logger.Named("vectorstore"))
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}
	defer func() { _ = store.Close() }()

	generator, err := llm.NewOllamaClient(llm.OllamaConfig{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger.Named("llm"))
	if err != nil {
		return fmt.Errorf("creating generation client: %w", err)
	}

	splitter, err := chunker.NewSplitter(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		return fmt.Errorf("creating splitter: %w", err)
	}

	topics := trivia.NewTopicStore()
	topics.EnsureTopic("code", "Code and best practices", "en")
	topics.EnsureTopic("soft_skills", "Soft skills for teams", "en")

	extractor := extract.New(generator, logger.Named("extract"))
	triviaSvc := trivia.NewService(topics, store, generator, extractor, splitter, trivia.RetrievalParams{
		K:               cfg.Retrieval.K,
		FetchK:          cfg.Retrieval.FetchK,
		DiversityWeight: cfg.Retrieval.DiversityWeight,
	}, logger.Named("trivia"))

	agent := interview.NewAgent(interview.NewSessionStore(), generator, logger.Named("interview"))

	server, err := httpapi.NewServer(triviaSvc, agent, logger.Named("http"), httpapi.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("creating http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
