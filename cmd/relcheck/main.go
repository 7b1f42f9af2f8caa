// relcheck validates the relational mapping of a model description and
// optionally compares it against a live database.
//
//	relcheck --model model.yaml --all
//	relcheck --model model.yaml --db-driver postgres --dsn "$DATABASE_URL"
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/compiler/load"
	"github.com/syssam/relcheck/dialect/sql"
	"github.com/syssam/relcheck/dialect/sql/schema"
	"github.com/syssam/relcheck/graph"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "relcheck: %v\n", err)
		return exitUsage
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "relcheck: %v\n", err)
		return exitUsage
	}
	if cfg.Watch {
		if err := watch(ctx, cfg, logger, stdout); err != nil {
			logger.Error("watch failed", "error", err)
			return exitUsage
		}
		return exitOK
	}
	return check(ctx, cfg, logger, stdout)
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// check runs one validation pass and returns its exit code.
func check(ctx context.Context, cfg Config, logger *slog.Logger, stdout io.Writer) int {
	logger = logger.With("pass", uuid.NewString())
	spec, err := load.Load(cfg.Model)
	if err != nil {
		logger.Error("loading model failed", "error", err)
		return exitUsage
	}
	if cfg.Snapshot != "" {
		if err := spec.WriteSnapshot(cfg.Snapshot); err != nil {
			logger.Error("writing snapshot failed", "error", err)
			return exitUsage
		}
		logger.Debug("snapshot written", "path", cfg.Snapshot)
	}
	if cfg.Dialect != "" {
		spec.Dialect = cfg.Dialect
	}
	name, err := spec.DialectName()
	if err != nil {
		logger.Error("invalid dialect", "error", err)
		return exitUsage
	}
	m, err := spec.Build()
	if err != nil {
		logger.Error("building model failed", "error", err)
		return exitUsage
	}

	opts := []schema.ValidateOption{
		schema.WithDialect(name),
		schema.WithLogger(logger),
	}
	if cfg.CollectAll {
		opts = append(opts, schema.WithCollectAll(), schema.WithConcurrency(cfg.Concurrency))
	}
	if cfg.StrictInheritance {
		opts = append(opts, schema.WithStrictInheritance())
	}
	if cfg.NoAdvisories {
		opts = append(opts, schema.WithoutAdvisories())
	}
	r := schema.Validate(m, opts...)

	if cfg.DSN != "" {
		warnings, err := drift(ctx, cfg, m, logger)
		if err != nil {
			logger.Error("inspecting database failed", "error", err)
			return exitUsage
		}
		r.Warnings = append(r.Warnings, warnings...)
	}
	report(stdout, r)
	if r.HasErrors() {
		return exitFatal
	}
	return exitOK
}

func drift(ctx context.Context, cfg Config, m *graph.Model, logger *slog.Logger) ([]*relcheck.MappingError, error) {
	drv, err := sql.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer drv.Close()
	stats := sql.NewStatsDriver(drv, sql.WithSlowQueryLog(logger))
	warnings, err := schema.Drift(ctx, stats, m, schema.WithLogger(logger))
	logger.Debug("database inspected", "stats", stats.QueryStats().Stats().String())
	return warnings, err
}

// report prints the diagnostics of r, fatal ones first.
func report(w io.Writer, r *schema.ValidationResult) {
	title := cases.Title(language.English)
	for _, err := range r.Errors {
		fmt.Fprintf(w, "error   %s: %v\n", kindTitle(title, relcheck.KindOf(err)), err)
	}
	for _, e := range r.Warnings {
		fmt.Fprintf(w, "warning %s: %v\n", kindTitle(title, e.Kind), e)
	}
	switch {
	case r.HasErrors():
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(r.Errors), len(r.Warnings))
	case r.HasWarnings():
		fmt.Fprintf(w, "0 errors, %d warning(s)\n", len(r.Warnings))
	default:
		fmt.Fprintln(w, r.String())
	}
}

// kindTitle turns "column-type-mismatch" into "Column Type Mismatch".
func kindTitle(c cases.Caser, k relcheck.Kind) string {
	if k == "" {
		return "Error"
	}
	return c.String(strings.ReplaceAll(string(k), "-", " "))
}
