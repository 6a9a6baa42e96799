package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/feedback-engine/internal/config"
	"github.com/jonathan/feedback-engine/internal/db"
	"github.com/jonathan/feedback-engine/internal/localstore"
	"github.com/jonathan/feedback-engine/internal/logging"
	"github.com/jonathan/feedback-engine/internal/reports"
	"github.com/jonathan/feedback-engine/internal/schemas"
	"github.com/jonathan/feedback-engine/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultSQLitePath is used when neither a PostgreSQL URL nor a SQLite path is configured.
const defaultSQLitePath = "feedback.db"

// store is the persistence the CLI needs beyond report generation.
type store interface {
	reports.Store
	Import(ctx context.Context, in *types.CycleInput) error
	SetReportAvailable(ctx context.Context, cycleID uuid.UUID, available bool) error
}

// loadSettings merges the config file, root flags and environment into one Config.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loadedCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rootDatabaseURL
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = rootSQLitePath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = rootLogDir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}

	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.ReportBaseURL == "" {
		cfg.ReportBaseURL = os.Getenv("REPORT_BASE_URL")
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		SQLitePath:               defaultSQLitePath,
		MinResponsesForAnonymity: types.DefaultMinResponsesForAnonymity,
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Dir: cfg.LogDir, Level: level})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// openStore connects to PostgreSQL when a URL is configured and to the SQLite
// file otherwise. The returned func releases the store.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store, func(), error) {
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("connected to postgres")
		return database, database.Close, nil
	}

	local, err := localstore.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite store %s: %w", cfg.SQLitePath, err)
	}
	logger.Debug("opened sqlite store", zap.String("path", cfg.SQLitePath))
	return local, func() {
		if err := local.Close(); err != nil {
			logger.Warn("failed to close sqlite store", zap.Error(err))
		}
	}, nil
}

// session bundles what the store-backed commands share.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	store  store
	engine *reports.Engine
	close  func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	st, closeStore, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	engine := reports.NewEngine(st, reports.EngineOptions{
		Logger:              logger,
		QuadrantThreshold:   cfg.QuadrantThreshold,
		DefaultMinResponses: cfg.MinResponsesForAnonymity,
	})

	return &session{
		cfg:    cfg,
		logger: logger,
		store:  st,
		engine: engine,
		close: func() {
			closeStore()
			_ = logger.Sync()
		},
	}, nil
}

func parseCycleID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid cycle id %q: %w", value, err)
	}
	return id, nil
}

// loadCycleInput reads a cycle input file and checks it against the input
// schema and the struct validation rules.
func loadCycleInput(path string) (*types.CycleInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	if err := schemas.ValidateCycleInput(content); err != nil {
		return nil, fmt.Errorf("input file %s is invalid: %w", path, err)
	}

	var in types.CycleInput
	if err := json.Unmarshal(content, &in); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cycle input JSON: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// writeJSON writes v as indented JSON to path, or to the command output when
// path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
