// Package main is the Parsume CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campushire/parsume/internal/config"
	"github.com/campushire/parsume/internal/export"
	"github.com/campushire/parsume/internal/extract"
	"github.com/campushire/parsume/internal/fallback"
	"github.com/campushire/parsume/internal/ingest"
	"github.com/campushire/parsume/internal/mapper"
	"github.com/campushire/parsume/internal/metrics"
	"github.com/campushire/parsume/internal/models"
	"github.com/campushire/parsume/internal/parser"
	"github.com/campushire/parsume/internal/pipeline"
	"github.com/campushire/parsume/internal/resumeindex"
	"github.com/campushire/parsume/internal/server"
	"github.com/campushire/parsume/internal/storage"
	"github.com/campushire/parsume/internal/uploads"
	"github.com/campushire/parsume/internal/watcher"
	"github.com/campushire/parsume/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/parsume/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "parsume server" from the project dir uses the project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallbackPath := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallbackPath); statErr == nil {
				cfg, loadErr := config.Load(fallbackPath)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallbackPath, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "parse":
		runParse()
	case "export":
		runExport()
	case "version", "--version", "-v":
		fmt.Printf("parsume version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (extraction, parsing, watch events)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	metrics.Register()
	metrics.RegisterHTTP()

	svc := components.Ingest
	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.New(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		func(path string) {
			studentID := ingest.StudentIDFromFilename(path)
			if _, err := svc.Ingest(context.Background(), studentID, path); err != nil {
				logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
			}
		},
		nil,
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Watch.Directories) > 0 {
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(
		components.Ingest,
		components.Mapper,
		components.Storage,
		components.Index,
		components.Uploads,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchSvc.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// runParse parses one resume file locally and prints the extracted fields
// and mapped profile as JSON. Useful for checking what a given resume
// yields without running the server.
func runParse() {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	useFallback := fs.Bool("fallback", false, "consult the extraction fallback service for sparse resumes")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: parsume parse [flags] <resume-file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		// Parsing needs no storage; fall back to pure defaults without a config file.
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	pl := buildPipeline(cfg, logger, *useFallback)
	fields := pl.ParseDocument(context.Background(), path)
	profile := mapper.New(cfg.Defaults).MapToProfile(fields)

	out := struct {
		Fields  *models.Fields `json:"fields"`
		Profile models.Profile `json:"profile"`
	}{fields, profile}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// runExport writes all stored profiles to an xlsx file using direct storage
// access. Run it with the server stopped, or use GET /api/v1/profiles/export.
func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outPath := fs.String("out", "profiles.xlsx", "output file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	profiles, err := store.ListProfiles(ctx)
	if err != nil {
		fmt.Printf("Failed to list profiles: %v\n", err)
		os.Exit(1)
	}
	m := mapper.New(cfg.Defaults)
	for _, sp := range profiles {
		proposal, err := store.GetProposal(ctx, sp.StudentID)
		if err != nil || proposal == nil {
			continue
		}
		sp.Profile = models.Merge(sp.Profile, m.MapToProfile(proposal.Fields))
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Printf("Failed to create output file: %v\n", err)
		os.Exit(1)
	}
	if err := export.WriteProfiles(f, profiles); err != nil {
		_ = f.Close()
		fmt.Printf("Export failed: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Printf("Failed to finalize output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d profile(s) to %s\n", len(profiles), *outPath)
}

// Components holds initialized services.
type Components struct {
	Storage storage.Storage
	Index   *resumeindex.Index
	Uploads *uploads.Store
	Mapper  *mapper.Mapper
	Ingest  *ingest.Service
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

func buildPipeline(cfg *config.Config, logger *zap.Logger, withFallback bool) *pipeline.Pipeline {
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if withFallback && cfg.Fallback.URL != "" {
		timeout := time.Duration(cfg.Fallback.TimeoutSeconds) * time.Second
		client := fallback.NewClient(cfg.Fallback.URL, timeout)
		opts = append(opts, pipeline.WithFallback(client, timeout))
	}
	return pipeline.New(extract.NewExtractor(), parser.NewParser(parser.DefaultVocabulary()), opts...)
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	index, err := resumeindex.New(cfg.Storage.ResumeIndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize resume index: %w", err)
	}

	up, err := uploads.NewStore(cfg.Storage.UploadDir)
	if err != nil {
		_ = index.Close()
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize upload store: %w", err)
	}

	pl := buildPipeline(cfg, logger, cfg.Fallback.URL != "")
	m := mapper.New(cfg.Defaults)
	svc := ingest.NewService(pl, m, store, index, logger)

	return &Components{
		Storage: store,
		Index:   index,
		Uploads: up,
		Mapper:  m,
		Ingest:  svc,
	}, nil
}

func printUsage() {
	fmt.Println(`parsume - Resume parsing service for the placement portal

Usage:
  parsume server [flags]          Start the HTTP server
  parsume parse [flags] <file>    Parse a resume file and print the result
  parsume export [flags]          Export all profiles to a spreadsheet
  parsume version                 Show version
  parsume help                    Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/parsume/config.yaml)
  --debug            Enable debug logging (extraction, parsing, watch events)

Parse Flags:
  --config string    Config file path
  --fallback         Consult the extraction fallback service for sparse resumes

Export Flags:
  --config string    Config file path
  --out string       Output file path (default: profiles.xlsx)

Examples:
  parsume server
  parsume server --debug
  parsume parse resume.pdf
  parsume parse --fallback scanned_resume.pdf
  parsume export --out placements.xlsx`)
}
