package schema

import (
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/relcheck"
	"github.com/syssam/relcheck/dialect"
	"github.com/syssam/relcheck/graph"
)

// ValidationResult holds the results of a validation pass.
type ValidationResult struct {
	// Errors holds the fatal diagnostics. In fail-fast mode (the default) it
	// has at most one element.
	Errors []error
	// Warnings holds the advisory diagnostics.
	Warnings []*relcheck.MappingError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns nil for a valid model, the fatal error when there is one,
// or a *relcheck.AggregateError when several were collected.
func (r *ValidationResult) Err() error {
	return relcheck.NewAggregateError(r.Errors...)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateOption configures a validation pass.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	dialect           string
	mapper            TypeMapper
	collectAll        bool
	concurrency       int
	logger            *slog.Logger
	skipAdvisories    bool
	strictInheritance bool
}

// WithDialect selects the dialect whose default type mapping resolves store
// types. Default is Postgres.
func WithDialect(name string) ValidateOption {
	return func(c *validateConfig) {
		c.dialect = name
	}
}

// WithTypeMapper overrides the default type mapping of the dialect.
func WithTypeMapper(m TypeMapper) ValidateOption {
	return func(c *validateConfig) {
		c.mapper = m
	}
}

// WithCollectAll reports the first error of every table group and every
// hierarchy instead of stopping at the first one. Table groups are then
// validated concurrently; errors keep the stable group order.
func WithCollectAll() ValidateOption {
	return func(c *validateConfig) {
		c.collectAll = true
	}
}

// WithConcurrency limits the number of table groups validated at once in
// collect mode. Zero or less means no limit.
func WithConcurrency(n int) ValidateOption {
	return func(c *validateConfig) {
		c.concurrency = n
	}
}

// WithLogger sets the logger advisories and pass summaries are written to.
// Default is slog.Default().
func WithLogger(l *slog.Logger) ValidateOption {
	return func(c *validateConfig) {
		c.logger = l
	}
}

// WithoutAdvisories disables the advisory checks.
func WithoutAdvisories() ValidateOption {
	return func(c *validateConfig) {
		c.skipAdvisories = true
	}
}

// WithStrictInheritance requires every mapped derived type to share the
// table of its root.
func WithStrictInheritance() ValidateOption {
	return func(c *validateConfig) {
		c.strictInheritance = true
	}
}

// validator holds the state of one pass. It is read-only after creation.
type validator struct {
	*validateConfig
}

func newValidator(opts ...ValidateOption) *validator {
	cfg := &validateConfig{dialect: dialect.Postgres}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.mapper == nil {
		cfg.mapper = DialectTypeMapper(cfg.dialect)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &validator{validateConfig: cfg}
}

// Validate checks the relational mapping of m. Advisory checks run first,
// then table sharing (connectivity, columns, keys, foreign keys, indexes)
// per table group and finally inheritance mapping. Without WithCollectAll,
// the first fatal diagnostic ends the pass.
//
// Example:
//
//	result := schema.Validate(model, schema.WithDialect(dialect.SQLite))
//	if err := result.Err(); err != nil {
//	    log.Fatal(err)
//	}
func Validate(m *graph.Model, opts ...ValidateOption) *ValidationResult {
	v := newValidator(opts...)
	result := &ValidationResult{}
	if !v.skipAdvisories {
		result.Warnings = v.advisories(m)
		for _, w := range result.Warnings {
			v.logger.Warn(w.Message, "kind", w.Kind, "entity", w.EntityType, "property", strings.Join(w.Members, ","))
		}
	}
	groups := GroupTables(m)
	if v.collectAll {
		result.Errors = append(result.Errors, v.collectGroups(groups)...)
		result.Errors = append(result.Errors, v.collectInheritance(m)...)
	} else if err := v.validateAll(m, groups); err != nil {
		result.Errors = append(result.Errors, err)
	}
	v.logger.Debug("relational mapping validated",
		"dialect", v.dialect,
		"tables", len(groups),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)
	return result
}

func (v *validator) validateAll(m *graph.Model, groups []*TableGroup) error {
	for _, g := range groups {
		if err := v.validateGroup(g); err != nil {
			return err
		}
	}
	for _, root := range m.RootEntityTypes() {
		if err := v.validateHierarchy(root); err != nil {
			return err
		}
	}
	return nil
}

// collectGroups validates the groups concurrently and returns their errors
// in group order.
func (v *validator) collectGroups(groups []*TableGroup) []error {
	errs := make([]error, len(groups))
	var eg errgroup.Group
	if v.concurrency > 0 {
		eg.SetLimit(v.concurrency)
	}
	for i, g := range groups {
		eg.Go(func() error {
			errs[i] = v.validateGroup(g)
			return nil
		})
	}
	_ = eg.Wait()
	return compact(errs)
}

func (v *validator) collectInheritance(m *graph.Model) []error {
	var errs []error
	for _, root := range m.RootEntityTypes() {
		if err := v.validateHierarchy(root); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// validateGroup runs the sharing checks on one table group. Groups with a
// single entity type have nothing to reconcile.
func (v *validator) validateGroup(g *TableGroup) error {
	if len(g.EntityTypes) < 2 {
		return nil
	}
	for _, check := range []func(*TableGroup) error{
		v.validateSharing,
		v.validateColumns,
		v.validateKeys,
		v.validateForeignKeys,
		v.validateIndexes,
	} {
		if err := check(g); err != nil {
			return err
		}
	}
	return nil
}

func compact(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
