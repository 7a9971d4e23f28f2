package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/hyperengineering/packvec/internal/config"
	"github.com/hyperengineering/packvec/internal/embedding"
	"github.com/hyperengineering/packvec/internal/export"
	"github.com/hyperengineering/packvec/internal/generator"
	"github.com/hyperengineering/packvec/internal/kb"
	"github.com/hyperengineering/packvec/internal/types"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	inputOverride  string
	outputOverride string
)

var rootCmd = &cobra.Command{
	Use:          "packvec",
	Short:        "Packvec - packing knowledge base embedding generator",
	Long:         "Reads packing items from CSV, generates OpenAI embeddings, and writes a Qdrant-ready points file.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&inputOverride, "input", "",
		"Knowledge base CSV path (overrides config and PACKVEC_INPUT)")
	rootCmd.Flags().StringVar(&outputOverride, "output", "",
		"Output JSON path (overrides config and PACKVEC_OUTPUT)")
}

func run(cmd *cobra.Command, args []string) error {
	// Signal handling: an interrupt cancels the run before the writer
	// ever executes, so no partial output file is produced.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Load configuration; a missing OPENAI_API_KEY fails here, before
	// any input or output file is touched.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if inputOverride != "" {
		cfg.Input.Path = inputOverride
	}
	if outputOverride != "" {
		cfg.Output.Path = outputOverride
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	})).With("run_id", ulid.Make().String())
	slog.SetDefault(logger)
	slog.Info("run started", "version", Version, "input", cfg.Input.Path, "output", cfg.Output.Path)

	items, err := kb.Load(cfg.Input.Path)
	if err != nil {
		return err
	}
	logStatistics(kb.Summarize(items))

	embedder := embedding.NewOpenAI(cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimensions)
	slog.Info("embedder initialized",
		"model", embedder.ModelName(),
		"dimensions", embedder.Dimensions(),
		"batch_size", cfg.Embedding.BatchSize,
	)

	points, err := generator.New(embedder, cfg.Embedding).Run(ctx, items)
	if err != nil {
		return err
	}

	exp := types.Export{
		Points: points,
		Metadata: types.Metadata{
			TotalItems:     len(points),
			EmbeddingModel: cfg.Embedding.Model,
			Dimensions:     cfg.Embedding.Dimensions,
			GeneratedAt:    time.Now().Format("2006-01-02 15:04:05"),
		},
	}

	size, err := export.Write(cfg.Output.Path, exp)
	if err != nil {
		return err
	}
	slog.Info("export written",
		"path", cfg.Output.Path,
		"points", len(points),
		"size_bytes", size,
	)

	uploader, err := export.NewUploader(cfg.Upload)
	if err != nil {
		return err
	}
	if err := uploader.Upload(ctx, cfg.Output.Path); err != nil {
		return err
	}
	if cfg.Upload.Bucket != "" {
		slog.Info("export uploaded", "bucket", cfg.Upload.Bucket)
	}

	slog.Info("run complete", "points", len(points))
	return nil
}

// logStatistics reports knowledge base distributions before embedding
// begins, so a bad load is visible ahead of any API spend.
func logStatistics(s kb.Summary) {
	slog.Info("knowledge base loaded", "items", s.TotalItems)
	for _, cat := range s.Categories() {
		slog.Info("category", "name", cat, "count", s.ByCategory[cat])
	}
	for _, tt := range s.TravelTypes() {
		slog.Info("travel type", "name", tt, "count", s.ByTravelType[tt])
	}
	for _, imp := range s.ImportanceLevels() {
		slog.Info("importance", "level", imp, "count", s.ByImportance[imp])
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
