// checksjob computes the composite permutation space for a set of root
// checks and stores the filtered results.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/checksgo/engine/internal/config"
	"github.com/checksgo/engine/internal/jobs"
	"github.com/checksgo/engine/internal/persist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printSection(title string) {
	fmt.Printf("  \033[33m── %s ──\033[0m\n", title)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printStat(label string, value string) {
	fmt.Printf("  %s \033[32m%s\033[0m\n", label, value)
}

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("CHECKSGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to PostgreSQL
	printSection("store")

	connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	db, err := persist.NewDB(connCtx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	printOK("postgres connected")

	if err := persist.EnsureSchema(connCtx, db); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	printOK("schema ready")

	// 4. Run the batch job
	printSection("permutations")

	runner := jobs.NewRunner(cfg.Jobs, persist.NewCheckRepo(db), persist.NewAttributeRepo(db), log)
	start := time.Now()
	stats, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("job: %w", err)
	}

	p := message.NewPrinter(language.English)
	printStat("roots", p.Sprintf("%d (%d skipped)", stats.Roots, stats.Skipped))
	printStat("examined", p.Sprintf("%d", stats.Examined))
	printStat("kept", p.Sprintf("%d", stats.Kept))
	printStat("elapsed", time.Since(start).Round(time.Millisecond).String())

	log.Info("job finished",
		zap.Int("roots", stats.Roots),
		zap.Int("skipped", stats.Skipped),
		zap.Int64("examined", stats.Examined),
		zap.Int64("kept", stats.Kept),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
