// Command ingest builds the sections file from raw statute sources and indexes it.
//
// Usage:
//
//	ingest acts  -dir DIR -out FILE [-glob PATTERN]
//	ingest lawdb -db FILE -out FILE [-tables FILE]
//	ingest text  -dir DIR -out FILE [-glob PATTERN]
//	ingest index [-in FILE] [-rebuild]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bharatlaw-ai/internal/config"
	"bharatlaw-ai/internal/embedcache"
	"bharatlaw-ai/internal/indexer"
	"bharatlaw-ai/internal/ingest"
	"bharatlaw-ai/internal/llm"
	"bharatlaw-ai/internal/metrics"
	"bharatlaw-ai/internal/rag"
	"bharatlaw-ai/internal/storage"
	"bharatlaw-ai/internal/vectorstore"
)

const embeddingCacheTTL = 7 * 24 * time.Hour

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ingest <acts|lawdb|text|index> [flags]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		result any
		err    error
	)
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "acts":
		result, err = runActs(ctx, args)
	case "lawdb":
		result, err = runLawDB(ctx, args)
	case "text":
		result, err = runText(ctx, args)
	case "index":
		result, err = runIndex(ctx, args)
	default:
		usage()
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}

func runActs(ctx context.Context, args []string) (*ingest.Report, error) {
	fs := flag.NewFlagSet("acts", flag.ExitOnError)
	dir := fs.String("dir", "./data/annotatedCentralActs", "directory of annotated act JSON files")
	out := fs.String("out", "./data/cleaned_acts.jsonl", "sections JSONL to append to")
	pattern := fs.String("glob", ingest.DefaultActsPattern, "files to parse, relative to -dir (e.g. **/*.json)")
	_ = fs.Parse(args)

	return withAppender(ctx, *out, func(sink ingest.Sink) (*ingest.Report, error) {
		return ingest.ParseActsDir(ctx, *dir, *pattern, sink)
	})
}

func runLawDB(ctx context.Context, args []string) (*ingest.Report, error) {
	fs := flag.NewFlagSet("lawdb", flag.ExitOnError)
	dbPath := fs.String("db", "./data/law.db", "SQLite law database with one table per act")
	out := fs.String("out", "./data/cleaned_acts.jsonl", "sections JSONL to append to")
	tablesPath := fs.String("tables", "", "YAML file overriding the table to act mapping")
	_ = fs.Parse(args)

	tables := ingest.DefaultActTables
	if *tablesPath != "" {
		var err error
		if tables, err = ingest.LoadActTables(*tablesPath); err != nil {
			return nil, err
		}
	}

	db, err := storage.OpenReadOnly(*dbPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	return withAppender(ctx, *out, func(sink ingest.Sink) (*ingest.Report, error) {
		return ingest.ParseLawDB(ctx, db, tables, sink)
	})
}

func runText(ctx context.Context, args []string) (*ingest.Report, error) {
	fs := flag.NewFlagSet("text", flag.ExitOnError)
	dir := fs.String("dir", "./data/raw", "directory of .txt statute dumps")
	out := fs.String("out", "./data/cleaned_acts.jsonl", "sections JSONL to append to")
	pattern := fs.String("glob", ingest.DefaultTextPattern, "files to parse, relative to -dir")
	_ = fs.Parse(args)

	return withAppender(ctx, *out, func(sink ingest.Sink) (*ingest.Report, error) {
		return ingest.ParseTextDir(ctx, *dir, *pattern, sink)
	})
}

func withAppender(ctx context.Context, out string, parse func(ingest.Sink) (*ingest.Report, error)) (*ingest.Report, error) {
	app, err := ingest.OpenAppender(ctx, out)
	if err != nil {
		return nil, err
	}
	report, err := parse(app)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return report, err
}

func runIndex(ctx context.Context, args []string) (*indexer.Stats, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("index", flag.ExitOnError)
	in := fs.String("in", cfg.ActsFile, "sections JSONL to index")
	rebuild := fs.Bool("rebuild", false, "drop and recreate the vector collection first")
	batch := fs.Int("batch", indexer.DefaultBatchSize, "chunks per embedding request")
	_ = fs.Parse(args)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		return nil, err
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = vectorStore.Close()
	}()

	var embedder rag.Embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	if cfg.RedisURL != "" {
		cacheStore, err := embedcache.NewRedisStore(ctx, cfg.RedisURL, embeddingCacheTTL)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = cacheStore.Close()
		}()
		embedder = embedcache.New(embedder, cacheStore, cfg.EmbeddingModelName, metrics.EmbeddingCacheTotal)
	}

	pipeline := indexer.NewPipeline(storage.NewSectionRepo(db), embedder, vectorStore, vectorStore, indexer.Options{
		Collection:     cfg.QdrantCollection,
		VectorSize:     cfg.QdrantVectorSize,
		EmbeddingModel: cfg.EmbeddingModelName,
		BatchSize:      *batch,
	})

	stats, err := pipeline.IndexFile(ctx, *in, *rebuild)
	if err != nil {
		return nil, err
	}

	info, err := vectorStore.GetCollectionInfo(ctx, cfg.QdrantCollection)
	if err != nil {
		slog.Warn("could not read collection info", "error", err)
	} else {
		slog.Info("collection ready", "collection", cfg.QdrantCollection, "points", info.PointsCount)
	}
	return stats, nil
}
